package cobranza

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/leox-api/internal/domain"
	"github.com/jhoicas/leox-api/internal/domain/repository"
)

const (
	// DefaultPageSize coincide con el tope de filas por petición del origen de datos.
	DefaultPageSize = repository.MaxPageRows
	// DefaultMaxPages válvula de seguridad: 10 páginas ⇒ 10.000 filas.
	DefaultMaxPages = 10
)

// PageFunc lee el rango inclusivo [from, to] del origen de datos.
type PageFunc[T any] func(ctx context.Context, from, to int) ([]T, error)

// FetchOptions controla la lectura paginada. Los valores cero usan los defaults.
type FetchOptions struct {
	PageSize      int
	MaxPages      int
	StrictCeiling bool          // true: alcanzar el tope es error (domain.ErrPageCeiling)
	PageTimeout   time.Duration // 0: sin timeout propio, se usa el del transporte
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.PageSize <= 0 || o.PageSize > repository.MaxPageRows {
		o.PageSize = DefaultPageSize
	}
	if o.MaxPages <= 0 {
		o.MaxPages = DefaultMaxPages
	}
	return o
}

// FetchReport describe cómo terminó una lectura paginada.
type FetchReport struct {
	Pages     int
	Rows      int
	Truncated bool // se alcanzó MaxPages y quedaban filas después del tope
}

// FetchAll pide rangos consecutivos de tamaño fijo y concatena los resultados hasta
// recibir una página corta o alcanzar MaxPages. Si la última página del tope viene
// llena se pide una sola fila más para distinguir "exactamente en el tope" de
// "truncado"; esa fila no se incluye ni cuenta en Pages. Las páginas son estrictamente
// secuenciales. Cualquier error descarta lo leído y se propaga; ctx se revisa
// entre páginas.
func FetchAll[T any](ctx context.Context, log zerolog.Logger, page PageFunc[T], opts FetchOptions) ([]T, FetchReport, error) {
	opts = opts.withDefaults()
	var (
		all    []T
		report FetchReport
	)

	for p := 0; p < opts.MaxPages; p++ {
		if err := ctx.Err(); err != nil {
			return nil, FetchReport{}, fmt.Errorf("fetch: cancelado antes de la página %d: %w", p, err)
		}

		from := p * opts.PageSize
		to := from + opts.PageSize - 1

		rows, err := fetchPage(ctx, page, from, to, opts.PageTimeout)
		if err != nil {
			return nil, FetchReport{}, fmt.Errorf("fetch: página %d [%d-%d]: %w", p, from, to, err)
		}
		all = append(all, rows...)
		report.Pages++
		report.Rows = len(all)

		if len(rows) < opts.PageSize {
			return nonNil(all), report, nil
		}
	}

	// última página llena justo en el tope: una fila más decide si hay pérdida
	next := opts.MaxPages * opts.PageSize
	if err := ctx.Err(); err != nil {
		return nil, FetchReport{}, fmt.Errorf("fetch: cancelado antes de comprobar el tope: %w", err)
	}
	extra, err := fetchPage(ctx, page, next, next, opts.PageTimeout)
	if err != nil {
		return nil, FetchReport{}, fmt.Errorf("fetch: comprobación del tope [%d-%d]: %w", next, next, err)
	}
	if len(extra) == 0 {
		return nonNil(all), report, nil
	}

	report.Truncated = true
	if opts.StrictCeiling {
		return nil, FetchReport{}, fmt.Errorf("fetch: %d páginas de %d filas: %w",
			opts.MaxPages, opts.PageSize, domain.ErrPageCeiling)
	}
	log.Warn().
		Int("pages", report.Pages).
		Int("rows", report.Rows).
		Int("page_size", opts.PageSize).
		Msg("fetch: se alcanzó el tope de páginas, el resultado puede estar truncado")
	return nonNil(all), report, nil
}

func fetchPage[T any](ctx context.Context, page PageFunc[T], from, to int, timeout time.Duration) ([]T, error) {
	if timeout <= 0 {
		return page(ctx, from, to)
	}
	pageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return page(pageCtx, from, to)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
