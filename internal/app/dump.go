package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/foreman/internal/attendance"
	"github.com/five82/foreman/internal/config"
	"github.com/five82/foreman/internal/logging"
)

// DumpOptions configure a headless month dump.
type DumpOptions struct {
	ConfigPath string
	Month      string // "2006-01"; empty uses the current month
	Branch     string // empty prints every branch
	Out        io.Writer
}

// Dump loads one month and prints it as a text grid.
func Dump(ctx context.Context, opts DumpOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.Console(os.Stderr, cfg.LogLevel)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	employees, err := client.ListEmployees(ctx, cfg.CompanyID)
	if err != nil {
		return fmt.Errorf("list employees: %w", err)
	}
	branches, err := client.ListBranches(ctx, cfg.CompanyID)
	if err != nil {
		return fmt.Errorf("list branches: %w", err)
	}

	sheet := attendance.NewSheet(attendance.Options{Logger: logger})
	sheet.SetRoster(employees, branches)
	sheet.SetBranchFilter(opts.Branch)

	ticket := sheet.Reload()
	if opts.Month != "" {
		m, err := attendance.ParseMonth(opts.Month)
		if err != nil {
			return err
		}
		ticket = sheet.SetMonth(m)
	}

	res := attendance.NewReconciler(client, cfg.CompanyID, logger).Fetch(ctx, ticket)
	if err := sheet.ApplyLoad(res); err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintln(out, RenderGrid(sheet))
	return err
}

// RenderGrid formats the visible rows of a sheet as a bordered text table.
func RenderGrid(s *attendance.Sheet) string {
	days := s.Days()
	headers := make([]string, 0, days+3)
	headers = append(headers, s.Month().Label())
	for day := 1; day <= days; day++ {
		headers = append(headers, strconv.Itoa(day))
	}
	headers = append(headers, "P", "A")

	rows := make([][]string, 0, len(s.Visible()))
	for _, emp := range s.Visible() {
		name := emp.Name
		if name == "" {
			name = emp.ID
		}
		row := make([]string, 0, len(headers))
		row = append(row, name)
		for day := 1; day <= days; day++ {
			row = append(row, dumpGlyph(s.Status(emp.ID, day)))
		}
		tally := s.Tally(emp.ID)
		row = append(row, strconv.Itoa(tally.Present), strconv.Itoa(tally.Absent))
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

func dumpGlyph(status attendance.DayStatus) string {
	switch status {
	case attendance.Present:
		return "P"
	case attendance.Absent:
		return "A"
	default:
		return "."
	}
}
