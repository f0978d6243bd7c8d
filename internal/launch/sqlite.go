package launch

import (
	"context"
	"fmt"
	"strings"

	"launchdash/internal/store"
)

func loadSQLite(ctx context.Context, src Source) ([]Record, error) {
	lower := strings.ToLower(src.Path)
	for _, ext := range []string{".gz", ".zst", ".zstd"} {
		if strings.HasSuffix(lower, ext) {
			return nil, fmt.Errorf("compressed sqlite databases are not supported: %s", src.Path)
		}
	}
	st, err := store.OpenExisting(src.Path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	rows, err := st.Rows(ctx, src.Table)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(rows))
	for i, r := range rows {
		rec, err := fromStoreRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func fromStoreRow(r store.Row) (Record, error) {
	return parquetRow{
		FlightNumber:           r.FlightNumber,
		LaunchSite:             r.LaunchSite,
		Class:                  r.Class,
		PayloadMassKg:          r.PayloadMassKg,
		BoosterVersion:         r.BoosterVersion,
		BoosterVersionCategory: r.BoosterVersionCategory,
	}.record()
}

// SaveSQLite writes records to the SQLite database at path, creating it if
// needed and replacing any launches already stored there. It returns the
// number of rows the database holds afterwards.
func SaveSQLite(ctx context.Context, path string, records []Record) (int, error) {
	st, err := store.Open(path)
	if err != nil {
		return 0, err
	}
	defer st.Close()

	rows := make([]store.Row, len(records))
	for i, r := range records {
		var class int64
		if r.Success {
			class = 1
		}
		rows[i] = store.Row{
			FlightNumber:           int64(r.FlightNumber),
			LaunchSite:             r.Site,
			Class:                  class,
			PayloadMassKg:          r.PayloadMassKg,
			BoosterVersion:         r.BoosterVersion,
			BoosterVersionCategory: r.BoosterCategory,
		}
	}
	if err := st.Replace(ctx, rows); err != nil {
		return 0, err
	}
	return st.Count(ctx)
}
