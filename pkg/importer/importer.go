package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"portfolio-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/tealeg/xlsx/v3"
)

// ErrTooManyErrors aborts an import whose row errors exceed MaxErrors.
var ErrTooManyErrors = errors.New("too many errors")

const defaultMaxErrors = 50

// maxSamples caps the error samples kept per sheet.
const maxSamples = 20

// ImportOptions defines the configuration for Excel import operations
type ImportOptions struct {
	MappingPath string // empty uses the embedded default mapping
	DryRun      bool
	MaxErrors   int // default 50
	Now         func() time.Time
}

// RowError represents an error that occurred during row processing
type RowError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// SheetSummary contains the import statistics for a single sheet
type SheetSummary struct {
	Name     string     `json:"name"`
	Inserted int        `json:"inserted"`
	Updated  int        `json:"updated"`
	Skipped  int        `json:"skipped"`
	Errors   int        `json:"errors"`
	Samples  []RowError `json:"error_samples,omitempty"`
}

func (s *SheetSummary) addError(row int, msg string) {
	s.Errors++
	if len(s.Samples) < maxSamples {
		s.Samples = append(s.Samples, RowError{Sheet: s.Name, Row: row, Message: msg})
	}
}

// ImportSummary contains the overall import statistics
type ImportSummary struct {
	Inserted int            `json:"inserted"`
	Updated  int            `json:"updated"`
	Skipped  int            `json:"skipped"`
	Errors   int            `json:"errors"`
	Sheets   []SheetSummary `json:"sheets"`
	DryRun   bool           `json:"dry_run"`
}

func (s *ImportSummary) add(sheet SheetSummary) {
	s.Sheets = append(s.Sheets, sheet)
	s.Inserted += sheet.Inserted
	s.Updated += sheet.Updated
	s.Skipped += sheet.Skipped
	s.Errors += sheet.Errors
}

// Row is one data row of a sheet, already mapped onto a create request.
type Row struct {
	Number  int // 1-based spreadsheet row number
	Project models.CreateProjectRequest
}

// SheetRows is the parse result for one sheet.
type SheetRows struct {
	Summary SheetSummary
	Rows    []Row
}

// TxStarter begins a transaction. *pgxpool.Pool and *pgx.Conn satisfy it.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ImportExcel reads an .xlsx workbook and upserts its rows by title. All
// writes share one transaction; a dry run or an aborted import rolls it back.
func ImportExcel(ctx context.Context, db TxStarter, r io.Reader, opts ImportOptions) (ImportSummary, error) {
	summary := ImportSummary{
		DryRun: opts.DryRun,
		Sheets: []SheetSummary{},
	}

	if opts.MaxErrors <= 0 {
		opts.MaxErrors = defaultMaxErrors
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	mapping, err := LoadMapping(opts.MappingPath)
	if err != nil {
		return summary, fmt.Errorf("failed to load mapping config: %w", err)
	}

	// xlsx needs random access, so the whole upload is buffered.
	data, err := io.ReadAll(r)
	if err != nil {
		return summary, fmt.Errorf("failed to read Excel file: %w", err)
	}
	sheets, err := ParseWorkbook(data, mapping)
	if err != nil {
		return summary, err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return summary, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	now := opts.Now().UTC().Truncate(time.Microsecond)
	for _, sheet := range sheets {
		sheetSummary := sheet.Summary
		for _, row := range sheet.Rows {
			inserted, err := upsertRow(ctx, tx, row.Project, now)
			if err != nil {
				if ctx.Err() != nil {
					return summary, ctx.Err()
				}
				sheetSummary.addError(row.Number, err.Error())
				continue
			}
			if inserted {
				sheetSummary.Inserted++
			} else {
				sheetSummary.Updated++
			}
		}
		summary.add(sheetSummary)

		if summary.Errors > opts.MaxErrors {
			return summary, fmt.Errorf("%w (%d), stopping import", ErrTooManyErrors, summary.Errors)
		}
	}

	if opts.DryRun {
		return summary, nil
	}
	if err := tx.Commit(ctx); err != nil {
		return summary, fmt.Errorf("commit import: %w", err)
	}
	return summary, nil
}

// ParseWorkbook maps every configured sheet of an .xlsx file onto create
// requests. Blank rows are skipped and invalid rows are reported in the
// sheet summary without being returned.
func ParseWorkbook(data []byte, mapping *MappingConfig) ([]SheetRows, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}

	var out []SheetRows
	for _, sheet := range file.Sheets {
		cfg, ok := mapping.For(sheet.Name)
		if !ok {
			continue
		}
		parsed, err := parseSheet(sheet, cfg)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet.Name, err)
		}
		out = append(out, parsed)
	}
	return out, nil
}

func parseSheet(sheet *xlsx.Sheet, cfg SheetConfig) (SheetRows, error) {
	result := SheetRows{Summary: SheetSummary{Name: sheet.Name}}
	if sheet.MaxRow == 0 {
		return result, nil
	}

	headers, err := rowValues(sheet, 0)
	if err != nil {
		return result, fmt.Errorf("read header row: %w", err)
	}
	columns := cfg.resolveHeaders(headers)
	if !hasField(columns, FieldTitle) {
		result.Summary.addError(1, "no title column found")
		return result, nil
	}

	for idx := 1; idx < sheet.MaxRow; idx++ {
		values, err := rowValues(sheet, idx)
		if err != nil {
			result.Summary.addError(idx+1, err.Error())
			continue
		}

		fields := make(map[string]string, len(columns))
		for col, field := range columns {
			if col < len(values) && values[col] != "" {
				fields[field] = values[col]
			}
		}
		if len(fields) == 0 {
			result.Summary.Skipped++
			continue
		}

		req := models.CreateProjectRequest{
			Title:       fields[FieldTitle],
			Description: fields[FieldDescription],
			ImageURL:    fields[FieldImageURL],
			VideoURL:    optional(fields[FieldVideoURL]),
			GithubURL:   optional(fields[FieldGithubURL]),
		}
		if err := req.Validate(); err != nil {
			var ve *models.ValidationError
			if errors.As(err, &ve) {
				result.Summary.addError(idx+1, strings.Join(ve.Errors, "; "))
			} else {
				result.Summary.addError(idx+1, err.Error())
			}
			continue
		}
		result.Rows = append(result.Rows, Row{Number: idx + 1, Project: req})
	}
	return result, nil
}

func rowValues(sheet *xlsx.Sheet, idx int) ([]string, error) {
	values := make([]string, sheet.MaxCol)
	for col := 0; col < sheet.MaxCol; col++ {
		cell, err := sheet.Cell(idx, col)
		if err != nil {
			return nil, err
		}
		values[col] = strings.TrimSpace(cell.String())
	}
	return values, nil
}

func hasField(columns map[int]string, field string) bool {
	for _, f := range columns {
		if f == field {
			return true
		}
	}
	return false
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// upsertRow updates the oldest project with the same title, or inserts a new
// one. Each row runs in a savepoint so one failure does not poison the batch.
func upsertRow(ctx context.Context, tx pgx.Tx, p models.CreateProjectRequest, now time.Time) (bool, error) {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer sp.Rollback(ctx) //nolint:errcheck

	var id int64
	err = sp.QueryRow(ctx,
		`SELECT id FROM projects WHERE title = $1 ORDER BY id LIMIT 1 FOR UPDATE`,
		p.Title).Scan(&id)

	inserted := false
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		_, err = sp.Exec(ctx, `
			INSERT INTO projects (title, description, image_url, video_url, github_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)`,
			p.Title, p.Description, p.ImageURL, p.VideoURL, p.GithubURL, now)
		inserted = true
	case err == nil:
		_, err = sp.Exec(ctx, `
			UPDATE projects
			SET description = $2, image_url = $3, video_url = $4, github_url = $5,
			    updated_at = GREATEST(created_at, $6)
			WHERE id = $1`,
			id, p.Description, p.ImageURL, p.VideoURL, p.GithubURL, now)
	}
	if err != nil {
		return false, err
	}
	return inserted, sp.Commit(ctx)
}
