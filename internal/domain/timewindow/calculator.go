// Package timewindow calcula los cortes de tiempo del dashboard y de los
// rollups: hoy, ayer, semana, mes y sus períodos anteriores.
//
// Todos los cortes se calculan convirtiendo "now" a la hora local del tenant
// (offset UTC fijo en minutos), truncando a la granularidad requerida y
// volviendo a UTC para comparar contra los timestamps UTC almacenados.
// Es una función pura de (now, offset): ningún componente inferior accede
// al reloj ambiente.
package timewindow

import "time"

// Window cortes de tiempo en UTC para un instante y offset dados.
type Window struct {
	Now time.Time

	TodayStart     time.Time
	TomorrowStart  time.Time
	YesterdayStart time.Time

	// WeekStart inicio de la ventana semanal móvil: 6 días atrás, inclusive
	// (los últimos 7 días terminando hoy). LastWeekStart son los 7 anteriores.
	WeekStart     time.Time
	LastWeekStart time.Time

	// MonthStart día 1 del mes calendario local. LastMonthStart día 1 del anterior.
	MonthStart     time.Time
	LastMonthStart time.Time

	// ThirtyDaysStart 29 días atrás del inicio de hoy (serie de 30 días del dashboard).
	ThirtyDaysStart time.Time

	// LookbackFloor piso de 1 año: las consultas de agregación no escanean
	// ventas más antiguas.
	LookbackFloor time.Time

	OffsetMinutes int
}

// Compute devuelve los cortes para el instante now y el offset UTC del tenant.
func Compute(now time.Time, offsetMinutes int) Window {
	loc := time.FixedZone("tenant", offsetMinutes*60)
	local := now.In(loc)

	todayLocal := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	monthLocal := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)

	return Window{
		Now:             now.UTC(),
		TodayStart:      todayLocal.UTC(),
		TomorrowStart:   todayLocal.AddDate(0, 0, 1).UTC(),
		YesterdayStart:  todayLocal.AddDate(0, 0, -1).UTC(),
		WeekStart:       todayLocal.AddDate(0, 0, -6).UTC(),
		LastWeekStart:   todayLocal.AddDate(0, 0, -13).UTC(),
		MonthStart:      monthLocal.UTC(),
		LastMonthStart:  monthLocal.AddDate(0, -1, 0).UTC(),
		ThirtyDaysStart: todayLocal.AddDate(0, 0, -29).UTC(),
		LookbackFloor:   todayLocal.AddDate(-1, 0, 0).UTC(),
		OffsetMinutes:   offsetMinutes,
	}
}

// DayStart devuelve el instante UTC del inicio del día local que contiene t.
// Es el valor que se almacena como Date en DailySalesSummary.
func DayStart(t time.Time, offsetMinutes int) time.Time {
	loc := time.FixedZone("tenant", offsetMinutes*60)
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).UTC()
}

// LocalDate devuelve la fecha calendario local (medianoche UTC como etiqueta)
// del instante t. Se usa para etiquetar series diarias sin arrastrar el offset.
func LocalDate(t time.Time, offsetMinutes int) time.Time {
	loc := time.FixedZone("tenant", offsetMinutes*60)
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
