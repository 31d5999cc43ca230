package entity

import "time"

const (
	DateLayout       = "2006-01-02"
	DateLabelMissing = "sin fecha"
	DateLabelInvalid = "fecha inválida"
)

// OptionalDate fecha que puede faltar o venir mal formada desde la vista.
// Raw conserva el texto original cuando no se pudo interpretar.
type OptionalDate struct {
	Time  time.Time
	Valid bool
	Raw   string
}

// DateOf construye una fecha válida.
func DateOf(t time.Time) OptionalDate {
	return OptionalDate{Time: t, Valid: true, Raw: t.Format(DateLayout)}
}

// Label devuelve la fecha en formato ISO o un marcador legible.
func (d OptionalDate) Label() string {
	if d.Valid {
		return d.Time.Format(DateLayout)
	}
	if d.Raw == "" {
		return DateLabelMissing
	}
	return DateLabelInvalid
}

// Ptr devuelve nil si la fecha no es utilizable.
func (d OptionalDate) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
