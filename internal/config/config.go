package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	AllowedOrigins []string

	// Season selection
	SeasonYear  int
	Division    string
	SeasonStart time.Time
	SeasonEnd   time.Time

	// Where games come from: a local CSV when set, the USAU endpoints
	// otherwise.
	GamesFile      string
	APIGamesURL    string
	HTMLResultsURL string

	RefreshInterval time.Duration

	// Solver tunables
	ConvergenceThreshold   float64
	MaxIters               int
	BlowoutMinOtherResults int
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	seasonYear := GetEnvAsInt("SEASON_YEAR", time.Now().Year())
	division := GetEnv("DIVISION", "club_open")

	// Default season window: the whole calendar year.
	seasonStart := GetEnvAsDate("SEASON_START", time.Date(seasonYear, 1, 1, 0, 0, 0, 0, time.UTC))
	seasonEnd := GetEnvAsDate("SEASON_END", time.Date(seasonYear, 12, 31, 0, 0, 0, 0, time.UTC))

	var allowedOrigins []string
	if originsStr := GetEnv("ALLOWED_ORIGINS", ""); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	return &Config{
		Port:           port,
		AllowedOrigins: allowedOrigins,

		SeasonYear:  seasonYear,
		Division:    division,
		SeasonStart: seasonStart,
		SeasonEnd:   seasonEnd,

		GamesFile:      GetEnv("GAMES_FILE", ""),
		APIGamesURL:    GetEnv("USAU_API_GAMES_URL", "https://play.usaultimate.org/api/v1/games/"),
		HTMLResultsURL: GetEnv("USAU_HTML_RESULTS_URL", "https://play.usaultimate.org/events/results/"),

		RefreshInterval: time.Duration(GetEnvAsInt("REFRESH_INTERVAL_MINUTES", 60)) * time.Minute,

		ConvergenceThreshold:   GetEnvAsFloat("CONVERGENCE_THRESHOLD", 0.01),
		MaxIters:               GetEnvAsInt("MAX_ITERS", 5000),
		BlowoutMinOtherResults: GetEnvAsInt("BLOWOUT_MIN_OTHER_RESULTS", 5),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Invalid float value for %s: %s, using default: %g", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsDate(key string, defaultValue time.Time) time.Time {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.Parse("2006-01-02", valueStr)
	if err != nil {
		log.Printf("Invalid date value for %s: %s, using default: %s", key, valueStr, defaultValue.Format("2006-01-02"))
		return defaultValue
	}
	return value
}
