package cases

import (
	"encoding/csv"
	"fmt"
	"io"
)

// exportHeader is the flat tabular contract with downstream consumers.
// Column order and formatting (score to 3 decimals, timestamps as
// YYYY-MM-DD HH:MM:SS) are fixed; do not reorder.
var exportHeader = []string{
	"case_id", "alert_id", "user_id", "user_name", "department",
	"score", "status", "assigned_to", "created_at",
}

const exportTimeLayout = "2006-01-02 15:04:05"

// WriteCSV renders a read-only snapshot of cases as CSV.
func WriteCSV(w io.Writer, snapshot []Case) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, c := range snapshot {
		row := []string{
			c.CaseID,
			c.AlertID,
			c.UserID,
			c.UserName,
			c.Department,
			fmt.Sprintf("%.3f", c.Score),
			string(c.Status),
			c.AssignedTo,
			c.CreatedAt.Format(exportTimeLayout),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
