package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mamadbah2/dailylog/internal/domain/models"
	"github.com/mamadbah2/dailylog/internal/repository"
)

const recordColumns = `date, weather, max_pressure, min_pressure, max_temperature, min_temperature,
	humidity, pollen, pm25, my_mood, wife_mood, headache_medicine, mishap, diary`

// Store implements repository.RecordRepository on an embedded SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (and migrates) the database at path. ":memory:" is accepted.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close(_ context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Create(ctx context.Context, record models.DailyRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recordArgs(record)...)
	if isUniqueViolation(err) {
		return repository.ErrDuplicateDate
	}
	if err != nil {
		return fmt.Errorf("sqlite: insert record: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, date time.Time) (models.DailyRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM daily_records WHERE date = ?`, date.Format(models.DateLayout))
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyRecord{}, repository.ErrNotFound
	}
	if err != nil {
		return models.DailyRecord{}, fmt.Errorf("sqlite: load record: %w", err)
	}
	return record, nil
}

func (s *Store) Update(ctx context.Context, date time.Time, record models.DailyRecord) error {
	args := append(recordArgs(record), date.Format(models.DateLayout))
	res, err := s.db.ExecContext(ctx, `
		UPDATE daily_records SET
			date = ?, weather = ?, max_pressure = ?, min_pressure = ?, max_temperature = ?,
			min_temperature = ?, humidity = ?, pollen = ?, pm25 = ?, my_mood = ?, wife_mood = ?,
			headache_medicine = ?, mishap = ?, diary = ?
		WHERE date = ?`, args...)
	if isUniqueViolation(err) {
		return repository.ErrDuplicateDate
	}
	if err != nil {
		return fmt.Errorf("sqlite: update record: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) Delete(ctx context.Context, date time.Time) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM daily_records WHERE date = ?`, date.Format(models.DateLayout))
	if err != nil {
		return fmt.Errorf("sqlite: delete record: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) List(ctx context.Context) ([]models.DailyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM daily_records ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list records: %w", err)
	}
	defer rows.Close()

	records := make([]models.DailyRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM daily_records`)
	if err != nil {
		return 0, fmt.Errorf("sqlite: clear records: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS daily_records (
			date TEXT NOT NULL PRIMARY KEY,
			weather TEXT NOT NULL DEFAULT '',
			max_pressure REAL,
			min_pressure REAL,
			max_temperature REAL,
			min_temperature REAL,
			humidity REAL,
			pollen TEXT NOT NULL DEFAULT '',
			pm25 TEXT NOT NULL DEFAULT '',
			my_mood TEXT NOT NULL,
			wife_mood TEXT NOT NULL,
			headache_medicine TEXT NOT NULL DEFAULT 'unknown',
			mishap INTEGER NOT NULL DEFAULT 0,
			diary TEXT NOT NULL DEFAULT ''
		);`,
	}

	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return err
		}
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (models.DailyRecord, error) {
	var (
		record models.DailyRecord
		date   string
		maxP   sql.NullFloat64
		minP   sql.NullFloat64
		maxT   sql.NullFloat64
		minT   sql.NullFloat64
		hum    sql.NullFloat64
		mishap int
	)
	err := row.Scan(&date, &record.Weather, &maxP, &minP, &maxT, &minT, &hum,
		&record.Pollen, &record.PM25, &record.MyMood, &record.WifeMood,
		&record.HeadacheMedicine, &mishap, &record.Diary)
	if err != nil {
		return models.DailyRecord{}, err
	}

	record.Date, err = models.ParseDate(date)
	if err != nil {
		return models.DailyRecord{}, err
	}
	record.MaxPressure = nullable(maxP)
	record.MinPressure = nullable(minP)
	record.MaxTemperature = nullable(maxT)
	record.MinTemperature = nullable(minT)
	record.Humidity = nullable(hum)
	record.Mishap = mishap != 0
	return record, nil
}

func recordArgs(r models.DailyRecord) []any {
	mishap := 0
	if r.Mishap {
		mishap = 1
	}
	return []any{
		r.Date.Format(models.DateLayout),
		string(r.Weather),
		optional(r.MaxPressure),
		optional(r.MinPressure),
		optional(r.MaxTemperature),
		optional(r.MinTemperature),
		optional(r.Humidity),
		string(r.Pollen),
		string(r.PM25),
		string(r.MyMood),
		string(r.WifeMood),
		string(r.HeadacheMedicine),
		mishap,
		r.Diary,
	}
}

func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	value := v.Float64
	return &value
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ repository.RecordRepository = (*Store)(nil)
