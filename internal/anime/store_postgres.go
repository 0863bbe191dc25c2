// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package anime

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paulohdf/animedex/internal/platform/dberr"
)

// querier is the subset of pgx operations shared by *pgxpool.Pool and pgx.Tx,
// allowing the same query methods to run pooled or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	db   querier
	pool *pgxpool.Pool // nil when this repository is transaction-scoped
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: pool, pool: pool}
}

const animeColumns = `id, name, number_of_episodes, uri, created_at, updated_at`

func (repository *PostgresRepository) ListAll(ctx context.Context) ([]*Anime, error) {
	query := fmt.Sprintf(`SELECT %s FROM anime ORDER BY id ASC`, animeColumns)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_all_animes")
	}
	defer rows.Close()

	return scanAnimes(rows)
}

func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Anime, int, error) {
	query := fmt.Sprintf(`SELECT %s FROM anime ORDER BY id ASC LIMIT $1 OFFSET $2`, animeColumns)
	const countQuery = `SELECT count(*) FROM anime`

	var total int
	if err := repository.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_animes")
	}

	rows, err := repository.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_animes")
	}
	defer rows.Close()

	animes, err := scanAnimes(rows)
	if err != nil {
		return nil, 0, err
	}

	return animes, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Anime, error) {
	query := fmt.Sprintf(`SELECT %s FROM anime WHERE id = $1`, animeColumns)

	record := &Anime{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&record.ID, &record.Name, &record.NumberOfEpisodes, &record.URI,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_anime_by_id")
	}

	return record, nil
}

func (repository *PostgresRepository) FindByName(ctx context.Context, name string) (*Anime, error) {
	// Exact match by contract; ordered so duplicated names resolve deterministically.
	query := fmt.Sprintf(`SELECT %s FROM anime WHERE name = $1 ORDER BY id ASC LIMIT 1`, animeColumns)

	record := &Anime{}
	err := repository.db.QueryRow(ctx, query, name).Scan(
		&record.ID, &record.Name, &record.NumberOfEpisodes, &record.URI,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_anime_by_name")
	}

	return record, nil
}

func (repository *PostgresRepository) Save(ctx context.Context, anime *Anime) error {
	if anime.ID == 0 {
		const query = `
			INSERT INTO anime (name, number_of_episodes, uri, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			RETURNING id, created_at, updated_at`

		err := repository.db.QueryRow(ctx, query, anime.Name, anime.NumberOfEpisodes, anime.URI).
			Scan(&anime.ID, &anime.CreatedAt, &anime.UpdatedAt)
		return dberr.Wrap(err, "insert_anime")
	}

	const query = `
		UPDATE anime
		SET name = $2, number_of_episodes = $3, uri = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := repository.db.QueryRow(ctx, query, anime.ID, anime.Name, anime.NumberOfEpisodes, anime.URI).
		Scan(&anime.UpdatedAt)
	return dberr.Wrap(err, "update_anime")
}

func (repository *PostgresRepository) Delete(ctx context.Context, anime *Anime) error {
	const query = `DELETE FROM anime WHERE id = $1`

	// RowsAffected is deliberately not checked: deleting an absent id is a no-op.
	_, err := repository.db.Exec(ctx, query, anime.ID)
	return dberr.Wrap(err, "delete_anime")
}

// InTx runs fn against a transaction-scoped repository.
//
// When this repository is itself transaction-scoped, fn joins the open
// transaction instead of starting a nested one.
func (repository *PostgresRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	if repository.pool == nil {
		return fn(repository)
	}

	tx, err := repository.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return dberr.Wrap(err, "begin_tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&PostgresRepository{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_tx")
	}
	return nil
}

// scanAnimes drains rows into entities.
func scanAnimes(rows pgx.Rows) ([]*Anime, error) {
	var animes []*Anime
	for rows.Next() {
		record := &Anime{}
		if err := rows.Scan(
			&record.ID, &record.Name, &record.NumberOfEpisodes, &record.URI,
			&record.CreatedAt, &record.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_anime")
		}
		animes = append(animes, record)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "scan_animes")
	}

	return animes, nil
}

var _ Repository = (*PostgresRepository)(nil)
