package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/schnose/schnose-bot-go/internal/domain"
	"github.com/schnose/schnose-bot-go/internal/service/database"
	boterrors "github.com/schnose/schnose-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// UserRepository stores per-user preferences: the last known Discord
// username, an optional linked SteamID and an optional preferred mode.
type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewUserRepository(pg *database.PostgresService, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     pg.GetDB(),
		logger: logger,
	}
}

// EnsureSchema creates the users table if it does not exist yet.
func (r *UserRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			discord_id BIGINT PRIMARY KEY,
			name       TEXT NOT NULL,
			steam_id   BIGINT,
			mode       SMALLINT
		)`)
	if err != nil {
		return boterrors.NewServiceError("failed to ensure users schema", "users", "ensure_schema", err)
	}
	return nil
}

// GetByDiscordID returns the preference row for a Discord user, or (nil, nil)
// when no row exists.
func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID uint64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT discord_id, name, steam_id, mode FROM users WHERE discord_id = $1`,
		int64(discordID))
	return r.scanUser(row)
}

// GetByName returns the first preference row whose saved username contains
// the given text, or (nil, nil).
func (r *UserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT discord_id, name, steam_id, mode FROM users WHERE name ILIKE '%' || $1 || '%' LIMIT 1`,
		name)
	return r.scanUser(row)
}

// GetBySteamID returns the preference row linked to a SteamID, or (nil, nil).
func (r *UserRepository) GetBySteamID(ctx context.Context, steamID domain.SteamID) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT discord_id, name, steam_id, mode FROM users WHERE steam_id = $1`,
		int64(steamID.ID32()))
	return r.scanUser(row)
}

// SetSteamID saves or clears (nil) a user's linked SteamID, creating the row
// when necessary. It reports whether a SteamID was already saved.
func (r *UserRepository) SetSteamID(ctx context.Context, discordID uint64, name string, steamID *domain.SteamID) (bool, error) {
	existing, err := r.GetByDiscordID(ctx, discordID)
	if err != nil {
		return false, err
	}

	dbValue := steamIDColumn(steamID)

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (discord_id, name, steam_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (discord_id) DO UPDATE SET name = $2, steam_id = $3`,
		int64(discordID), name, dbValue)
	if err != nil {
		return false, boterrors.NewServiceError("failed to save steam id", "users", "set_steam_id", err)
	}

	return existing.HasSteamID(), nil
}

// SetMode saves or clears (nil) a user's preferred mode, creating the row
// when necessary. It reports whether a mode was already saved.
func (r *UserRepository) SetMode(ctx context.Context, discordID uint64, name string, mode *domain.Mode) (bool, error) {
	existing, err := r.GetByDiscordID(ctx, discordID)
	if err != nil {
		return false, err
	}

	var dbValue sql.NullInt16
	if mode != nil && mode.IsValid() {
		dbValue = sql.NullInt16{Int16: int16(*mode), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (discord_id, name, mode)
		VALUES ($1, $2, $3)
		ON CONFLICT (discord_id) DO UPDATE SET name = $2, mode = $3`,
		int64(discordID), name, dbValue)
	if err != nil {
		return false, boterrors.NewServiceError("failed to save mode", "users", "set_mode", err)
	}

	return existing.HasMode(), nil
}

// steamIDColumn encodes an optional SteamID for storage. The account id is a
// full uint32, which overflows INTEGER, so the column is BIGINT.
func steamIDColumn(steamID *domain.SteamID) sql.NullInt64 {
	if steamID == nil || !steamID.IsValid() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(steamID.ID32()), Valid: true}
}

// steamIDFromColumn decodes a stored account id, rejecting values outside the
// uint32 range.
func steamIDFromColumn(v sql.NullInt64) (*domain.SteamID, bool) {
	if !v.Valid || v.Int64 <= 0 || v.Int64 > math.MaxUint32 {
		return nil, false
	}
	sid := domain.SteamIDFromID32(uint32(v.Int64))
	return &sid, true
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var (
		discordID int64
		name      string
		steamID   sql.NullInt64
		mode      sql.NullInt16
	)

	if err := row.Scan(&discordID, &name, &steamID, &mode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, boterrors.NewServiceError("failed to read user", "users", "scan", err)
	}

	if discordID < 0 {
		return nil, boterrors.NewServiceError(
			fmt.Sprintf("invalid discord id %d in database", discordID), "users", "scan", nil)
	}

	user := &domain.User{
		DiscordID: uint64(discordID),
		Name:      name,
	}

	if steamID.Valid {
		if sid, ok := steamIDFromColumn(steamID); ok {
			user.SteamID = sid
		} else {
			r.logger.Warn("Invalid steam id in database",
				zap.Int64("discord_id", discordID),
				zap.Int64("steam_id", steamID.Int64),
			)
		}
	}

	if mode.Valid {
		if m, err := domain.ModeFromID(uint8(mode.Int16)); err == nil {
			user.Mode = &m
		} else {
			r.logger.Warn("Invalid mode id in database",
				zap.Int64("discord_id", discordID),
				zap.Int16("mode", mode.Int16),
			)
		}
	}

	return user, nil
}
