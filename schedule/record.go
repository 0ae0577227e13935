package schedule

import "database/sql"

const (
	// TblGrids is the name of the sql database table that contains the
	// grid point of every chain for each round.
	TblGrids = "schedgrids"
	// TblBarrier is the name of the sql database table that contains
	// the cumulative barrier value at every grid point for each round.
	TblBarrier = "schedbarrier"
)

// Recorder writes per-round schedules (and optionally the barrier that
// produced them) into a sql database for later analysis.
type Recorder struct {
	db *sql.DB
}

func NewRecorder(db *sql.DB) (*Recorder, error) {
	s := "CREATE TABLE IF NOT EXISTS " + TblGrids + " (round INTEGER, chain INTEGER, beta REAL);"
	if _, err := db.Exec(s); err != nil {
		return nil, err
	}

	s = "CREATE TABLE IF NOT EXISTS " + TblBarrier + " (round INTEGER, chain INTEGER, barrier REAL);"
	if _, err := db.Exec(s); err != nil {
		return nil, err
	}
	return &Recorder{db: db}, nil
}

// Record stores the grid points of s under the given round number.  If
// barrier is non-nil its value at each grid point is stored too.
func (r *Recorder) Record(round int, s Schedule, barrier CumFunc) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	s1 := "INSERT INTO " + TblGrids + " (round,chain,beta) VALUES (?,?,?);"
	s2 := "INSERT INTO " + TblBarrier + " (round,chain,barrier) VALUES (?,?,?);"
	for i := 0; i < s.NumChains(); i++ {
		if _, err := tx.Exec(s1, round, i, s.At(i)); err != nil {
			tx.Rollback()
			return err
		}
		if barrier == nil {
			continue
		}
		if _, err := tx.Exec(s2, round, i, barrier(s.At(i))); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
