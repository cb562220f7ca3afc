package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/schnose/schnose-bot-go/internal/constants"
	"github.com/schnose/schnose-bot-go/internal/service/cache"
	"github.com/schnose/schnose-bot-go/pkg/errors"
	"github.com/schnose/schnose-bot-go/pkg/metrics"
	"go.uber.org/zap"
)

// KZGOMap is the KZ:GO side of a map's metadata: tier, bonus count, mode
// filters and ranked-points flags.
type KZGOMap struct {
	Name    string   `json:"name"`
	Tier    int      `json:"tier"`
	Bonuses int      `json:"bonuses"`
	KZT     bool     `json:"kzt"`
	SKZ     bool     `json:"skz"`
	VNL     bool     `json:"vnl"`
	SP      bool     `json:"sp"`
	VP      bool     `json:"vp"`
	Mappers []string `json:"mapperNames"`
}

// KZGOService provides access to the KZ:GO community API.
type KZGOService struct {
	httpClient *http.Client
	baseURL    string
	cache      *cache.CacheService
	metrics    *metrics.Manager
	logger     *zap.Logger
}

func NewKZGOService(baseURL string, cacheSvc *cache.CacheService, m *metrics.Manager, logger *zap.Logger) *KZGOService {
	return &KZGOService{
		httpClient: &http.Client{
			Timeout: constants.APIConfig.KZGOTimeout,
		},
		baseURL: baseURL,
		cache:   cacheSvc,
		metrics: m,
		logger:  logger,
	}
}

// GetMaps fetches KZ:GO's map list, cached.
func (k *KZGOService) GetMaps(ctx context.Context) ([]KZGOMap, error) {
	cacheKey := "kzgo:maps"

	var cached []KZGOMap
	if err := k.cache.Get(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.baseURL+"/maps", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := k.httpClient.Do(req)
	if err != nil {
		k.metrics.ObserveAPIRequest("kzgo", "/maps", 0, time.Since(start))
		return nil, errors.NewAPIError("KZ:GO request failed", 502, nil).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	k.metrics.ObserveAPIRequest("kzgo", "/maps", resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAPIError(fmt.Sprintf("KZ:GO returned %d", resp.StatusCode), resp.StatusCode, nil)
	}

	var maps []KZGOMap
	if err := json.Unmarshal(body, &maps); err != nil {
		return nil, errors.NewAPIError("failed to decode KZ:GO maps", 502, nil).WithCause(err)
	}

	_ = k.cache.Set(ctx, cacheKey, maps, constants.CacheTTL.KZGOMaps)
	return maps, nil
}
