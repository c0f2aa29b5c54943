package usecase

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
)

// csvHeader is the fixed export column order. Changing it breaks downstream
// consumers of the export contract.
var csvHeader = []string{
	"Name",
	"Asset",
	"Probability",
	"Impact",
	"InherentRisk",
	"ResidualRisk",
	"Level",
	"CreationDate",
}

// WriteCSV writes the assessment collection in the fixed export format:
// risk scores with two decimals, creation date as ISO date.
func WriteCSV(w io.Writer, assessments []*model.Assessment) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}

	for _, a := range assessments {
		row := []string{
			a.Name,
			a.Asset,
			fmt.Sprintf("%d", a.Probability),
			fmt.Sprintf("%d", a.Impact),
			fmt.Sprintf("%.2f", a.InherentRisk),
			fmt.Sprintf("%.2f", a.ResidualRisk),
			a.RiskLevel.String(),
			a.CreatedAt.Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return goerr.Wrap(err, "failed to write CSV row", goerr.V("name", a.Name))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}

	return nil
}
