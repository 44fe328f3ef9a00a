package models

import (
	"fmt"
	"strings"
	"time"
)

type PeriodType int

const (
	PeriodTypeUnknown PeriodType = iota
	PeriodTypeDaily
	PeriodTypeWeekly
	PeriodTypeMonthly
	PeriodTypeQuarterly
	PeriodTypeSixMonthly
	PeriodTypeYearly
)

var periodTypeNames = map[PeriodType]string{
	PeriodTypeDaily:      "Daily",
	PeriodTypeWeekly:     "Weekly",
	PeriodTypeMonthly:    "Monthly",
	PeriodTypeQuarterly:  "Quarterly",
	PeriodTypeSixMonthly: "SixMonthly",
	PeriodTypeYearly:     "Yearly",
}

func (p PeriodType) String() string {
	if name, ok := periodTypeNames[p]; ok {
		return name
	}
	return "Unknown"
}

func PeriodTypeFromString(s string) PeriodType {
	for periodType, name := range periodTypeNames {
		if strings.EqualFold(name, s) {
			return periodType
		}
	}
	return PeriodTypeUnknown
}

type Period struct {
	Id         int64
	PeriodType PeriodType
	StartDate  time.Time
	EndDate    time.Time
}

// DisplayName is the human readable name of the period, as shown in report subtitles.
func (p Period) DisplayName() string {
	switch p.PeriodType {
	case PeriodTypeDaily:
		return p.StartDate.Format(time.DateOnly)
	case PeriodTypeWeekly:
		year, week := p.StartDate.ISOWeek()
		return fmt.Sprintf("W%d %d", week, year)
	case PeriodTypeMonthly:
		return p.StartDate.Format("January 2006")
	case PeriodTypeQuarterly, PeriodTypeSixMonthly:
		return fmt.Sprintf("%s - %s", p.StartDate.Format("January"), p.EndDate.Format("January 2006"))
	case PeriodTypeYearly:
		return p.StartDate.Format("2006")
	default:
		return fmt.Sprintf("%s - %s", p.StartDate.Format(time.DateOnly), p.EndDate.Format(time.DateOnly))
	}
}

type OrganisationUnit struct {
	Id   int64
	Uid  string
	Name string
}
