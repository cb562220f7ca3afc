package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/schnose/schnose-bot-go/internal/constants"
	"github.com/schnose/schnose-bot-go/internal/domain"
	"github.com/schnose/schnose-bot-go/internal/service/cache"
	"github.com/schnose/schnose-bot-go/internal/util"
	"github.com/schnose/schnose-bot-go/pkg/errors"
	"github.com/schnose/schnose-bot-go/pkg/metrics"
	"go.uber.org/zap"
)

// globalRecordRaw is the raw GlobalAPI record payload.
type globalRecordRaw struct {
	ID         int     `json:"id"`
	SteamID64  string  `json:"steamid64"`
	PlayerName string  `json:"player_name"`
	SteamID    string  `json:"steam_id"`
	MapID      int     `json:"map_id"`
	MapName    string  `json:"map_name"`
	Stage      int     `json:"stage"`
	Mode       string  `json:"mode"`
	Time       float64 `json:"time"`
	Teleports  int     `json:"teleports"`
	ReplayID   int     `json:"replay_id"`
	CreatedOn  string  `json:"created_on"`
}

// globalMapRaw is the raw GlobalAPI map payload.
type globalMapRaw struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Validated   bool   `json:"validated"`
	WorkshopURL string `json:"workshop_url"`
	UpdatedOn   string `json:"updated_on"`
}

// HealthReport summarizes the GlobalAPI status page: how many of the last 10
// healthchecks succeeded and how many responded fast.
type HealthReport struct {
	SuccessfulResponses int `json:"successful_responses"`
	FastResponses       int `json:"fast_responses"`
}

// GlobalAPIService provides access to the GlobalAPI leaderboard service.
type GlobalAPIService struct {
	httpClient *http.Client
	baseURL    string
	healthURL  string
	cache      *cache.CacheService
	breaker    *util.CircuitBreaker
	metrics    *metrics.Manager
	logger     *zap.Logger
}

func NewGlobalAPIService(baseURL, healthURL string, cacheSvc *cache.CacheService, m *metrics.Manager, logger *zap.Logger) *GlobalAPIService {
	svc := &GlobalAPIService{
		httpClient: &http.Client{
			Timeout: constants.APIConfig.GlobalAPITimeout,
		},
		baseURL:   baseURL,
		healthURL: healthURL,
		cache:     cacheSvc,
		metrics:   m,
		logger:    logger,
	}

	svc.breaker = util.NewCircuitBreaker(
		constants.CircuitBreakerConfig.FailureThreshold,
		constants.CircuitBreakerConfig.ResetTimeout,
		constants.CircuitBreakerConfig.HealthCheckInterval,
		svc.healthCheck,
		logger.Named("globalapi-breaker"),
	)

	return svc
}

// healthCheck probes the status page, bypassing the circuit breaker.
func (g *GlobalAPIService) healthCheck() bool {
	ctx, cancel := context.WithTimeout(context.Background(), constants.CircuitBreakerConfig.HealthCheckTimeout)
	defer cancel()

	report, err := g.CheckHealth(ctx)
	return err == nil && report.SuccessfulResponses >= 5
}

func computeDelay(attempt int) time.Duration {
	jitter := time.Duration(rand.Float64() * float64(constants.RetryConfig.Jitter))
	base := constants.RetryConfig.BaseDelay * time.Duration(math.Pow(2, float64(attempt)))
	return base + jitter
}

// sleepWithContext waits out a retry delay unless the context ends first.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// doRequest performs a GET against the GlobalAPI with retry and circuit breaker.
func (g *GlobalAPIService) doRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if !g.breaker.CanExecute() {
		g.logger.Warn("GlobalAPI circuit breaker is open", zap.String("path", path))
		return nil, errors.NewAPIError("Circuit breaker open", 503, map[string]any{
			"path": path,
		})
	}

	reqURL := g.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var lastErr error

	for attempt := 0; attempt < constants.RetryConfig.MaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := g.httpClient.Do(req)
		if err != nil {
			g.metrics.ObserveAPIRequest("globalapi", path, 0, time.Since(start))
			lastErr = err
			g.breaker.RecordFailure(0)

			if attempt < constants.RetryConfig.MaxAttempts-1 {
				delay := computeDelay(attempt)
				g.logger.Warn("GlobalAPI request failed, retrying",
					zap.Error(err),
					zap.Int("attempt", attempt+1),
					zap.Duration("delay", delay),
				)
				if err := sleepWithContext(ctx, delay); err != nil {
					return nil, err
				}
				continue
			}
			break
		}

		// Read body and close immediately (not defer in loop!)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		g.metrics.ObserveAPIRequest("globalapi", path, resp.StatusCode, time.Since(start))

		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 || resp.StatusCode == 429 {
			lastErr = errors.NewAPIError(fmt.Sprintf("Server error: %d", resp.StatusCode), resp.StatusCode, nil)
			g.breaker.RecordFailure(0)

			if attempt < constants.RetryConfig.MaxAttempts-1 {
				if err := sleepWithContext(ctx, computeDelay(attempt)); err != nil {
					return nil, err
				}
				continue
			}
			break
		}

		if resp.StatusCode >= 400 {
			return nil, errors.NewAPIError(fmt.Sprintf("Client error: %d", resp.StatusCode), resp.StatusCode, map[string]any{
				"url":  reqURL,
				"body": string(body),
			})
		}

		g.breaker.RecordSuccess()
		return body, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.NewAPIError("GlobalAPI request failed after all retries", 502, nil)
}

func playerParams(params url.Values, player domain.PlayerIdentifier) {
	if player.IsSteamID() {
		params.Set("steamid64", strconv.FormatUint(player.SteamID.ID64(), 10))
	} else {
		params.Set("player_name", player.Name)
	}
}

func (g *GlobalAPIService) mapRecord(raw *globalRecordRaw) (*domain.RunRecord, error) {
	steamID, err := domain.ParseSteamID(raw.SteamID)
	if err != nil {
		if steamID, err = domain.ParseSteamID(raw.SteamID64); err != nil {
			return nil, errors.NewAPIError("record has no usable steam id", 502, map[string]any{
				"record_id": raw.ID,
			})
		}
	}

	mode, err := domain.ParseMode(raw.Mode)
	if err != nil {
		return nil, errors.NewAPIError("record has unknown mode", 502, map[string]any{
			"record_id": raw.ID,
			"mode":      raw.Mode,
		})
	}

	record := &domain.RunRecord{
		ID:         raw.ID,
		PlayerName: raw.PlayerName,
		SteamID:    steamID,
		Mode:       mode,
		MapID:      raw.MapID,
		MapName:    raw.MapName,
		Stage:      raw.Stage,
		Time:       raw.Time,
		Teleports:  raw.Teleports,
	}

	if created, err := time.Parse("2006-01-02T15:04:05", raw.CreatedOn); err == nil {
		record.CreatedOn = created
	}

	if raw.ReplayID != 0 {
		record.ReplayViewURL = constants.URLConfig.ReplayViewURL + strconv.Itoa(raw.ReplayID)
		record.ReplayDownloadURL = constants.URLConfig.ReplayDownload + strconv.Itoa(raw.ReplayID)
	}

	return record, nil
}

// GetPB fetches a player's personal best in one category. Never cached: the
// record may have changed seconds ago.
func (g *GlobalAPIService) GetPB(ctx context.Context, player domain.PlayerIdentifier, mapID int, mode domain.Mode, hasTeleports bool, course int) (*domain.RunRecord, error) {
	params := url.Values{}
	playerParams(params, player)
	params.Set("map_id", strconv.Itoa(mapID))
	params.Set("modes_list_string", mode.APIName())
	params.Set("has_teleports", strconv.FormatBool(hasTeleports))
	params.Set("stage", strconv.Itoa(course))
	params.Set("limit", "1")

	return g.fetchSingleRecord(ctx, params)
}

// GetWR fetches the world record in one category, cached briefly.
func (g *GlobalAPIService) GetWR(ctx context.Context, mapID int, mode domain.Mode, hasTeleports bool, course int) (*domain.RunRecord, error) {
	cacheKey := fmt.Sprintf("globalapi:wr:%d:%s:%t:%d", mapID, mode.APIName(), hasTeleports, course)

	var cached *domain.RunRecord
	if err := g.cache.Get(ctx, cacheKey, &cached); err == nil && cached != nil {
		return cached, nil
	}

	params := url.Values{}
	params.Set("map_id", strconv.Itoa(mapID))
	params.Set("modes_list_string", mode.APIName())
	params.Set("has_teleports", strconv.FormatBool(hasTeleports))
	params.Set("stage", strconv.Itoa(course))
	params.Set("limit", "1")

	record, err := g.fetchSingleRecord(ctx, params)
	if err != nil {
		return nil, err
	}

	_ = g.cache.Set(ctx, cacheKey, record, constants.CacheTTL.WorldRecord)
	return record, nil
}

func (g *GlobalAPIService) fetchSingleRecord(ctx context.Context, params url.Values) (*domain.RunRecord, error) {
	records, err := g.fetchRecords(ctx, "/records/top", params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NewAPIError("no record found", 404, nil)
	}
	return &records[0], nil
}

// GetMapTop fetches the category leaderboard of a map course.
func (g *GlobalAPIService) GetMapTop(ctx context.Context, mapID int, mode domain.Mode, hasTeleports bool, course, limit int) ([]domain.RunRecord, error) {
	params := url.Values{}
	params.Set("map_id", strconv.Itoa(mapID))
	params.Set("modes_list_string", mode.APIName())
	params.Set("has_teleports", strconv.FormatBool(hasTeleports))
	params.Set("stage", strconv.Itoa(course))
	params.Set("limit", strconv.Itoa(limit))

	records, err := g.fetchRecords(ctx, "/records/top", params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NewAPIError("no records found", 404, nil)
	}
	return records, nil
}

// GetRecent fetches a player's most recent personal bests, newest first.
func (g *GlobalAPIService) GetRecent(ctx context.Context, player domain.PlayerIdentifier, limit int) ([]domain.RunRecord, error) {
	params := url.Values{}
	playerParams(params, player)
	params.Set("limit", strconv.Itoa(limit))

	records, err := g.fetchRecords(ctx, "/records/top/recent", params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NewAPIError("no records found", 404, nil)
	}
	return records, nil
}

func (g *GlobalAPIService) fetchRecords(ctx context.Context, path string, params url.Values) ([]domain.RunRecord, error) {
	body, err := g.doRequest(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var raws []globalRecordRaw
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, errors.NewAPIError("failed to decode records", 502, nil).WithCause(err)
	}

	records := make([]domain.RunRecord, 0, len(raws))
	for i := range raws {
		record, err := g.mapRecord(&raws[i])
		if err != nil {
			g.logger.Warn("Skipping unmappable record",
				zap.Int("record_id", raws[i].ID),
				zap.Error(err),
			)
			continue
		}
		records = append(records, *record)
	}
	return records, nil
}

// GetPlace fetches a record's leaderboard placement.
func (g *GlobalAPIService) GetPlace(ctx context.Context, recordID int) (int, error) {
	body, err := g.doRequest(ctx, fmt.Sprintf("/records/place/%d", recordID), nil)
	if err != nil {
		return 0, err
	}

	place, err := strconv.Atoi(string(body))
	if err != nil {
		return 0, errors.NewAPIError("failed to decode placement", 502, nil).WithCause(err)
	}
	return place, nil
}

// GetMaps fetches the validated global map pool, cached.
func (g *GlobalAPIService) GetMaps(ctx context.Context) ([]domain.GlobalMap, error) {
	cacheKey := "globalapi:maps"

	var cached []domain.GlobalMap
	if err := g.cache.Get(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	params := url.Values{}
	params.Set("is_validated", "true")
	params.Set("limit", "9999")

	body, err := g.doRequest(ctx, "/maps", params)
	if err != nil {
		return nil, err
	}

	var raws []globalMapRaw
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, errors.NewAPIError("failed to decode maps", 502, nil).WithCause(err)
	}

	maps := make([]domain.GlobalMap, 0, len(raws))
	for _, raw := range raws {
		maps = append(maps, domain.GlobalMap{
			ID:        raw.ID,
			Name:      raw.Name,
			Validated: raw.Validated,
			UpdatedOn: raw.UpdatedOn,
		})
	}

	_ = g.cache.Set(ctx, cacheKey, maps, constants.CacheTTL.GlobalMaps)
	return maps, nil
}

// WorldRecordHolder is one row of the world record holder leaderboard.
type WorldRecordHolder struct {
	SteamID64  string `json:"steamid64"`
	SteamID    string `json:"steam_id"`
	Count      int    `json:"count"`
	PlayerName string `json:"player_name"`
}

// GetWorldRecordTop fetches the players holding the most world records in one
// category, cached briefly. Main courses query stage 0, bonuses stages 1-100.
func (g *GlobalAPIService) GetWorldRecordTop(ctx context.Context, mode domain.Mode, hasTeleports, bonus bool, limit int) ([]WorldRecordHolder, error) {
	cacheKey := fmt.Sprintf("globalapi:wrtop:%s:%t:%t:%d", mode.APIName(), hasTeleports, bonus, limit)

	var cached []WorldRecordHolder
	if err := g.cache.Get(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	params := url.Values{}
	if bonus {
		for stage := 1; stage <= 100; stage++ {
			params.Add("stages", strconv.Itoa(stage))
		}
	} else {
		params.Set("stages", "0")
	}
	params.Set("mode_ids", strconv.Itoa(int(mode)))
	params.Set("tickrates", "128")
	params.Set("has_teleports", strconv.FormatBool(hasTeleports))
	params.Set("limit", strconv.Itoa(limit))

	body, err := g.doRequest(ctx, "/records/top/world_records", params)
	if err != nil {
		return nil, err
	}

	var holders []WorldRecordHolder
	if err := json.Unmarshal(body, &holders); err != nil {
		return nil, errors.NewAPIError("failed to decode world record holders", 502, nil).WithCause(err)
	}
	if len(holders) == 0 {
		return nil, errors.NewAPIError("no records found", 404, nil)
	}

	_ = g.cache.Set(ctx, cacheKey, holders, constants.CacheTTL.WorldRecord)
	return holders, nil
}

// GetCompletedMapIDs fetches the ids of every map a player has finished in one
// category. An empty set is not an error, new players have no runs at all.
func (g *GlobalAPIService) GetCompletedMapIDs(ctx context.Context, player domain.PlayerIdentifier, mode domain.Mode, hasTeleports bool) (map[int]bool, error) {
	params := url.Values{}
	playerParams(params, player)
	params.Set("modes_list_string", mode.APIName())
	params.Set("has_teleports", strconv.FormatBool(hasTeleports))
	params.Set("stage", "0")
	params.Set("tickrate", "128")
	params.Set("limit", "9999")

	records, err := g.fetchRecords(ctx, "/records/top", params)
	if err != nil {
		return nil, err
	}

	completed := make(map[int]bool, len(records))
	for i := range records {
		completed[records[i].MapID] = true
	}
	return completed, nil
}

type healthStatusRaw struct {
	Results []struct {
		Success  bool  `json:"success"`
		Duration int64 `json:"duration"` // nanoseconds
	} `json:"results"`
}

// CheckHealth reads the GlobalAPI status page. It bypasses doRequest so the
// circuit breaker can use it as a recovery probe.
func (g *GlobalAPIService) CheckHealth(ctx context.Context) (*HealthReport, error) {
	cacheKey := "globalapi:health"

	var cached *HealthReport
	if err := g.cache.Get(ctx, cacheKey, &cached); err == nil && cached != nil {
		return cached, nil
	}

	reqURL := g.healthURL + "/endpoints/_globalapi/statuses?page=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.metrics.ObserveAPIRequest("globalapi-health", "/statuses", 0, time.Since(start))
		return nil, errors.NewAPIError("health check request failed", 502, nil).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	g.metrics.ObserveAPIRequest("globalapi-health", "/statuses", resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAPIError(fmt.Sprintf("health check returned %d", resp.StatusCode), resp.StatusCode, nil)
	}

	var raw healthStatusRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.NewAPIError("failed to decode health status", 502, nil).WithCause(err)
	}

	report := &HealthReport{}
	results := raw.Results
	if len(results) > 10 {
		results = results[:10]
	}
	for _, result := range results {
		if result.Success {
			report.SuccessfulResponses++
		}
		if time.Duration(result.Duration) < 600*time.Millisecond {
			report.FastResponses++
		}
	}

	_ = g.cache.Set(ctx, cacheKey, report, constants.CacheTTL.HealthReport)
	return report, nil
}
