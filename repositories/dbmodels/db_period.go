package dbmodels

import (
	"time"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/utils"
)

const (
	TABLE_PERIOD            = "period"
	TABLE_ORGANISATION_UNIT = "organisationunit"
)

type DBPeriod struct {
	Id         int64     `db:"periodid"`
	PeriodType string    `db:"periodtype"`
	StartDate  time.Time `db:"startdate"`
	EndDate    time.Time `db:"enddate"`
}

var SelectPeriodColumn = utils.ColumnList[DBPeriod]()

func AdaptPeriod(db DBPeriod) (models.Period, error) {
	return models.Period{
		Id:         db.Id,
		PeriodType: models.PeriodTypeFromString(db.PeriodType),
		StartDate:  db.StartDate,
		EndDate:    db.EndDate,
	}, nil
}

type DBOrganisationUnit struct {
	Id   int64  `db:"organisationunitid"`
	Uid  string `db:"uid"`
	Name string `db:"name"`
}

var SelectOrganisationUnitColumn = utils.ColumnList[DBOrganisationUnit]()

func AdaptOrganisationUnit(db DBOrganisationUnit) (models.OrganisationUnit, error) {
	return models.OrganisationUnit{
		Id:   db.Id,
		Uid:  db.Uid,
		Name: db.Name,
	}, nil
}
