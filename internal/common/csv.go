// Package common holds the transaction CSV codec shared by the CLI commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fjacquet/txsearch/internal/dateutils"
	"fjacquet/txsearch/internal/fileutils"
	"fjacquet/txsearch/internal/logging"
	"fjacquet/txsearch/internal/models"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is the CSV field separator used when none is configured.
const DefaultDelimiter = ','

// TagSeparator joins transaction tags inside a single CSV column.
const TagSeparator = "|"

// TransactionRow is the CSV layout of a transaction. Dates and amounts stay
// strings here and are converted with the same parsers as query values.
type TransactionRow struct {
	ID                 string `csv:"ID"`
	Date               string `csv:"Date"`
	Description        string `csv:"Description"`
	Amount             string `csv:"Amount"`
	Currency           string `csv:"Currency"`
	Type               string `csv:"Type"`
	SourceAccount      string `csv:"SourceAccount"`
	DestinationAccount string `csv:"DestinationAccount"`
	Category           string `csv:"Category"`
	Budget             string `csv:"Budget"`
	Bill               string `csv:"Bill"`
	Tags               string `csv:"Tags"`
	ExternalID         string `csv:"ExternalID"`
	InternalReference  string `csv:"InternalReference"`
	CreatedAt          string `csv:"CreatedAt"`
	UpdatedAt          string `csv:"UpdatedAt"`
}

// ToTransaction converts the row. Date and Amount are required; the
// timestamps may be empty.
func (r TransactionRow) ToTransaction() (models.Transaction, error) {
	date, _, err := dateutils.ParseDate(r.Date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %q: %w", r.ID, err)
	}
	amount, err := models.ParseAmount(r.Amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %q: %w", r.ID, err)
	}
	createdAt, err := optionalDate(r.CreatedAt)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %q created at: %w", r.ID, err)
	}
	updatedAt, err := optionalDate(r.UpdatedAt)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %q updated at: %w", r.ID, err)
	}

	return models.Transaction{
		ID:                 r.ID,
		Date:               date,
		Description:        r.Description,
		Amount:             amount,
		Currency:           r.Currency,
		Type:               r.Type,
		SourceAccount:      r.SourceAccount,
		DestinationAccount: r.DestinationAccount,
		Category:           r.Category,
		Budget:             r.Budget,
		Bill:               r.Bill,
		Tags:               splitTags(r.Tags),
		ExternalID:         r.ExternalID,
		InternalReference:  r.InternalReference,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}, nil
}

// RowFromTransaction is the inverse of ToTransaction.
func RowFromTransaction(tx models.Transaction) TransactionRow {
	return TransactionRow{
		ID:                 tx.ID,
		Date:               dateutils.ToISODate(tx.Date),
		Description:        tx.Description,
		Amount:             tx.Amount.StringFixed(2),
		Currency:           tx.Currency,
		Type:               tx.Type,
		SourceAccount:      tx.SourceAccount,
		DestinationAccount: tx.DestinationAccount,
		Category:           tx.Category,
		Budget:             tx.Budget,
		Bill:               tx.Bill,
		Tags:               strings.Join(tx.Tags, TagSeparator),
		ExternalID:         tx.ExternalID,
		InternalReference:  tx.InternalReference,
		CreatedAt:          formatOptionalDate(tx.CreatedAt),
		UpdatedAt:          formatOptionalDate(tx.UpdatedAt),
	}
}

func optionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, _, err := dateutils.ParseDate(s)
	return t, err
}

func formatOptionalDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return dateutils.ToISODate(t)
}

func splitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, TagSeparator) {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ReadCSV reads CSV data with the given delimiter into a slice of TCSVRow
// using gocsv. The first line must be the header.
func ReadCSV[TCSVRow any](r io.Reader, delimiter rune) ([]TCSVRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// ReadCSVFile is ReadCSV on a file.
func ReadCSVFile[TCSVRow any](filePath string, delimiter rune, logger logging.Logger) ([]TCSVRow, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	logger.Info("Reading CSV file", logging.F(logging.FieldFile, filePath))

	file, err := os.Open(filePath)
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows, err := ReadCSV[TCSVRow](file, delimiter)
	if err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, err
	}

	logger.Info("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// ReadTransactionsFile loads transactions from a CSV file.
func ReadTransactionsFile(filePath string, delimiter rune, logger logging.Logger) ([]models.Transaction, error) {
	rows, err := ReadCSVFile[TransactionRow](filePath, delimiter, logger)
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := row.ToTransaction()
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", filePath, i+2, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// WriteTransactionsCSV writes transactions as CSV with a header line.
func WriteTransactionsCSV(w io.Writer, transactions []models.Transaction, delimiter rune) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	rows := make([]TransactionRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, RowFromTransaction(tx))
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteTransactionsFile writes transactions to csvFile, creating its
// directory if needed.
func WriteTransactionsFile(csvFile string, transactions []models.Transaction, delimiter rune, logger logging.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}
	logger.Info("Writing transactions to CSV file",
		logging.F(logging.FieldFile, csvFile),
		logging.F(logging.FieldCount, len(transactions)))

	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	return WriteTransactionsCSV(file, transactions, delimiter)
}

// ParseDelimiter turns a configured delimiter string into a rune. An empty
// string selects DefaultDelimiter.
func ParseDelimiter(s string) (rune, error) {
	if s == "" {
		return DefaultDelimiter, nil
	}
	if s == `\t` {
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("CSV delimiter must be a single character, got %q", s)
	}
	return runes[0], nil
}
