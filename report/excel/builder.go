package excel

import (
	"fmt"

	"orderdata/models"
	"orderdata/report/aggregate"
	"orderdata/report/checks"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	ordersSheet    = "Orders"
	summarySheet   = "Summary"
	dashboardSheet = "Dashboard"
	checksSheet    = "Checks"
)

// Report bundles everything one workbook needs.
type Report struct {
	Rows    []models.Row
	Summary []aggregate.SummaryRow
	Margins []aggregate.ChannelMargin
	Funnel  []aggregate.FunnelStep
	Checks  []checks.Check
}

// Build writes the four sheet workbook to path. Empty inputs still produce
// every sheet with its header so an empty window yields a valid artifact.
func Build(rep Report, path string) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorln(err)
		}
	}()

	for _, name := range []string{ordersSheet, summarySheet, dashboardSheet, checksSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	if err := writeOrders(f, rep.Rows); err != nil {
		return err
	}
	if err := writeSummary(f, rep.Summary); err != nil {
		return err
	}
	if err := writeDashboard(f, rep.Margins, rep.Funnel); err != nil {
		return err
	}
	if err := writeChecks(f, rep.Checks); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	idx, err := f.GetSheetIndex(ordersSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	return f.SaveAs(path)
}

var rowHeader = []interface{}{
	"order_id", "external_id", "date", "channel", "seller", "status",
	"updated_at", "delivered_at", "sku", "qty", "revenue", "cost", "margin",
}

func rowValues(r models.Row) []interface{} {
	deliveredAt := ""
	if r.DeliveredAt != nil {
		deliveredAt = r.DeliveredAt.Format(models.TimeLayout)
	}
	return []interface{}{
		r.OrderID, r.ExternalID, r.Date.Format(models.TimeLayout), r.Channel,
		r.Seller, r.Status, r.UpdatedAt.Format(models.TimeLayout), deliveredAt,
		r.Sku, r.Qty, r.Revenue, r.Cost, r.Margin,
	}
}

func writeOrders(f *excelize.File, rows []models.Row) error {
	if err := f.SetSheetRow(ordersSheet, "A1", &rowHeader); err != nil {
		return err
	}
	for i, r := range rows {
		values := rowValues(r)
		if err := f.SetSheetRow(ordersSheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, summary []aggregate.SummaryRow) error {
	header := []interface{}{"channel", "seller", "revenue", "cost", "margin", "items_count", "unique_orders"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}
	for i, s := range summary {
		values := []interface{}{s.Channel, s.Seller, s.Revenue, s.Cost, s.Margin, s.ItemsCount, s.UniqueOrders}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return err
		}
	}
	return nil
}

// writeDashboard puts the margin-by-channel table at A1 and the funnel table
// at E1, with a column chart under each one.
func writeDashboard(f *excelize.File, margins []aggregate.ChannelMargin, funnel []aggregate.FunnelStep) error {
	marginHeader := []interface{}{"channel", "margin"}
	if err := f.SetSheetRow(dashboardSheet, "A1", &marginHeader); err != nil {
		return err
	}
	for i, m := range margins {
		values := []interface{}{m.Channel, m.Margin}
		if err := f.SetSheetRow(dashboardSheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return err
		}
	}

	funnelHeader := []interface{}{"Status", "Order Count", "Step Conv %", "Total Conv %"}
	if err := f.SetSheetRow(dashboardSheet, "E1", &funnelHeader); err != nil {
		return err
	}
	for i, step := range funnel {
		values := []interface{}{step.Status, step.Count, step.StepConv, step.TotalConv}
		if err := f.SetSheetRow(dashboardSheet, fmt.Sprintf("E%d", i+2), &values); err != nil {
			return err
		}
	}

	if len(margins) > 0 {
		err := f.AddChart(dashboardSheet, "A10", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", dashboardSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", dashboardSheet, len(margins)+1),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", dashboardSheet, len(margins)+1),
			}},
			Title: []excelize.RichTextRun{{Text: "Margin by channel"}},
		})
		if err != nil {
			return err
		}
	}
	if len(funnel) > 0 {
		err := f.AddChart(dashboardSheet, "J10", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$F$1", dashboardSheet),
				Categories: fmt.Sprintf("%s!$E$2:$E$%d", dashboardSheet, len(funnel)+1),
				Values:     fmt.Sprintf("%s!$F$2:$F$%d", dashboardSheet, len(funnel)+1),
			}},
			Title: []excelize.RichTextRun{{Text: "Order funnel by status"}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// writeChecks renders one titled block per category: the title carries the
// match count, then either a header plus the matching rows or a highlighted
// no-issues marker.
func writeChecks(f *excelize.File, cks []checks.Check) error {
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	okStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D6EFD6"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	row := 1
	for _, c := range cks {
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(checksSheet, cell, fmt.Sprintf("%s (found: %d)", c.Title, len(c.Rows))); err != nil {
			return err
		}
		if err := f.SetCellStyle(checksSheet, cell, cell, titleStyle); err != nil {
			return err
		}
		row += 2

		if len(c.Rows) == 0 {
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetCellValue(checksSheet, cell, "No issues found"); err != nil {
				return err
			}
			if err := f.SetCellStyle(checksSheet, cell, cell, okStyle); err != nil {
				return err
			}
			row += 2
			continue
		}

		if err := f.SetSheetRow(checksSheet, fmt.Sprintf("A%d", row), &rowHeader); err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(rowHeader), row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(checksSheet, fmt.Sprintf("A%d", row), last, headerStyle); err != nil {
			return err
		}
		for _, r := range c.Rows {
			row++
			values := rowValues(r)
			if err := f.SetSheetRow(checksSheet, fmt.Sprintf("A%d", row), &values); err != nil {
				return err
			}
		}
		row += 2
	}
	return nil
}
