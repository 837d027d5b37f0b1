package service

import (
	"time"

	"github.com/thiagusantos-jpg/dubairro/internal/sales/extract"
	"github.com/thiagusantos-jpg/dubairro/internal/sales/model"
)

var nomesDiasSemana = map[time.Weekday]string{
	time.Monday:    "Segunda",
	time.Tuesday:   "Terça",
	time.Wednesday: "Quarta",
	time.Thursday:  "Quinta",
	time.Friday:    "Sexta",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// Calendar generates one row per day of the year. A business day is any
// non-Sunday that is not in the holiday set (the store opens on Saturdays).
// Holidays are an externally supplied list of ISO dates — they are
// calendar-specific and never derived here.
func Calendar(ano int, feriados map[string]struct{}) []model.CalendarDay {
	out := make([]model.CalendarDay, 0, 366)

	for d := time.Date(ano, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == ano; d = d.AddDate(0, 0, 1) {
		data := d.Format("2006-01-02")
		wd := d.Weekday()
		_, feriado := feriados[data]
		domingo := wd == time.Sunday

		out = append(out, model.CalendarDay{
			Data:         data,
			Dia:          d.Day(),
			DiaSemana:    nomesDiasSemana[wd],
			DiaSemanaNum: (int(wd)+6)%7 + 1, // 1=Monday .. 7=Sunday
			SemanaMes:    (d.Day()-1)/7 + 1,
			Mes:          int(d.Month()),
			NomeMes:      extract.NomeMes(int(d.Month())),
			Ano:          ano,
			Trimestre:    [5]string{"", "Q1", "Q2", "Q3", "Q4"}[(int(d.Month())-1)/3+1],
			EUtil:        !domingo && !feriado,
			EDomingo:     domingo,
			EFeriado:     feriado,
		})
	}
	return out
}
