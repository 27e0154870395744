package cache

import "time"

// CacheConfig holds configuration for cache TTL values and behavior
type CacheConfig struct {
	CarDataTTL     time.Duration `json:"carDataTTL"`     // 1 minute for single listings
	CarListTTL     time.Duration `json:"carListTTL"`     // 2 minutes for list data
	FilterDataTTL  time.Duration `json:"filterDataTTL"`  // 10 minutes for filter option sets
	MaxMemoryUsage int64         `json:"maxMemoryUsage"` // 100MB limit
	EvictionPolicy string        `json:"evictionPolicy"` // "lru"
	KeyPrefix      string        `json:"keyPrefix"`      // prefix for all cache keys
	TagPrefix      string        `json:"tagPrefix"`      // prefix for tag keys
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		CarDataTTL:     1 * time.Minute,
		CarListTTL:     2 * time.Minute,
		FilterDataTTL:  10 * time.Minute,
		MaxMemoryUsage: 100 * 1024 * 1024, // 100MB
		EvictionPolicy: "lru",
		KeyPrefix:      "carrental:",
		TagPrefix:      "tag:",
	}
}

// GetTTLForDataType returns appropriate TTL based on data type
func (c CacheConfig) GetTTLForDataType(dataType string) time.Duration {
	switch dataType {
	case "car":
		return c.CarDataTTL
	case "car_list":
		return c.CarListTTL
	case "filter":
		return c.FilterDataTTL
	default:
		return c.CarDataTTL
	}
}
