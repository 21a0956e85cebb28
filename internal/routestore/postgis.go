package routestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// PostGISStore persists routes in a PostGIS-enabled Postgres database, one
// row per vertex, ordered by (segment_index, vertex_index).
type PostGISStore struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// Open connects to host/port/user/password/dbname and verifies the
// connection with a ping.
func Open(host string, port int, user, password, dbname string, log *zap.SugaredLogger) (*PostGISStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &PostGISStore{db: db, log: log}, nil
}

// InitSchema creates the routes table and its PostGIS geometry index.
func (s *PostGISStore) InitSchema(ctx context.Context) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis;`,
		`CREATE TABLE IF NOT EXISTS routes (
			route_id TEXT NOT NULL,
			segment_index INT NOT NULL,
			vertex_index INT NOT NULL,
			location GEOMETRY(POINT, 4326) NOT NULL,
			PRIMARY KEY (route_id, segment_index, vertex_index)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_routes_location ON routes USING GIST(location);`,
	}

	for _, q := range queries {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	s.log.Info("route store schema ready")
	return nil
}

// SaveRoute replaces the stored vertices for routeID with vertices, in
// batches, inside a transaction per batch.
func (s *PostGISStore) SaveRoute(ctx context.Context, routeID string, vertices []Vertex) error {
	const batchSize = 5000

	if _, err := s.db.ExecContext(ctx, `DELETE FROM routes WHERE route_id = $1`, routeID); err != nil {
		return fmt.Errorf("failed to clear existing route %s: %w", routeID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO routes (route_id, segment_index, vertex_index, location)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326))
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}

	for i, v := range vertices {
		if _, err := stmt.ExecContext(ctx, routeID, v.SegmentIndex, v.VertexIndex, v.Lng, v.Lat); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("failed to insert vertex %d of route %s: %w", i, routeID, err)
		}

		if (i+1)%batchSize == 0 {
			if err := stmt.Close(); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to close batch statement: %w", err)
			}
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit batch: %w", err)
			}

			tx, err = s.db.BeginTx(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to begin new transaction: %w", err)
			}
			stmt, err = tx.PrepareContext(ctx, `
				INSERT INTO routes (route_id, segment_index, vertex_index, location)
				VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326))
			`)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to prepare batch statement: %w", err)
			}
		}
	}

	if err := stmt.Close(); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to close final batch statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit final batch: %w", err)
	}

	s.log.Infow("saved route", "route_id", routeID, "vertices", len(vertices))
	return nil
}

// LoadRoute fetches every vertex of routeID, ordered so ToRoute can
// reassemble the original segment/vertex structure.
func (s *PostGISStore) LoadRoute(ctx context.Context, routeID string) ([]Vertex, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT segment_index, vertex_index, ST_Y(location), ST_X(location)
		FROM routes
		WHERE route_id = $1
		ORDER BY segment_index, vertex_index
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query route %s: %w", routeID, err)
	}
	defer rows.Close()

	var vertices []Vertex
	for rows.Next() {
		v := Vertex{RouteID: routeID}
		if err := rows.Scan(&v.SegmentIndex, &v.VertexIndex, &v.Lat, &v.Lng); err != nil {
			return nil, fmt.Errorf("failed to scan vertex row: %w", err)
		}
		vertices = append(vertices, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return vertices, nil
}

// Close closes the underlying database connection.
func (s *PostGISStore) Close() error {
	return s.db.Close()
}
