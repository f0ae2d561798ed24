package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/scorecard-service/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "FETCH_TIMEOUT", "DEFAULT_LEVEL", "SUBJECT_LAYOUT", "SCORE_TOPIC",
		"EVENTS_PUBLISHER", "KAFKA_BROKERS", "EXPORT_SUBJECT_ORDER"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 1, cfg.Scoring.DefaultLevel)
	assert.Equal(t, "scores", cfg.Events.ScoreTopic)
	assert.Equal(t, "kafka", cfg.Events.Publisher)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Events.GetKafkaBrokers())
	assert.Equal(t, []string{"Physics", "Chemistry", "Mathematics"}, cfg.Scoring.ExportSubjectOrder)

	engineCfg, err := cfg.Scoring.Engine()
	require.NoError(t, err)
	assert.Equal(t, 75, engineCfg.Layout.Size())
	assert.Equal(t, []string{"444792191"}, engineCfg.Overrides.Grace)
	assert.Equal(t, []string{"4447921684", "4447921686", "4447921687"}, engineCfg.Overrides.MultiCorrect["444792493"])
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("EVENTS_PUBLISHER", "mock")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("SCORE_TOPIC", "jee-scores")
	t.Setenv("EXPORT_SUBJECT_ORDER", "Chemistry, Physics")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, "mock", cfg.Events.Publisher)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.GetKafkaBrokers())
	assert.Equal(t, "jee-scores", cfg.Events.ScoreTopic)
	assert.Equal(t, []string{"Chemistry", "Physics"}, cfg.Scoring.ExportSubjectOrder)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "soon")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "FETCH_TIMEOUT")

	t.Setenv("FETCH_TIMEOUT", "")
	t.Setenv("DEFAULT_LEVEL", "9")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "DEFAULT_LEVEL")
}

func TestParseMultiCorrect(t *testing.T) {
	got, err := ParseMultiCorrect(" 1=a|b ; 2=c ")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"1": {"a", "b"}, "2": {"c"}}, got)

	got, err = ParseMultiCorrect("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseMultiCorrect("1=")
	assert.Error(t, err)
	_, err = ParseMultiCorrect("nokey")
	assert.Error(t, err)
}

func TestScoringConfig_EngineErrors(t *testing.T) {
	_, err := ScoringConfig{SubjectLayout: "Physics:x"}.Engine()
	assert.ErrorContains(t, err, "SUBJECT_LAYOUT")

	_, err = ScoringConfig{SubjectLayout: "Physics:25", MultiCorrectOverrides: "bad"}.Engine()
	assert.ErrorContains(t, err, "MULTI_CORRECT_OVERRIDES")
}

func TestEventConfig_CreateEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, c := range []EventConfig{
		{Enabled: false, Publisher: "kafka"},
		{Enabled: true, Publisher: "mock"},
		{Enabled: true, Publisher: "carrier-pigeon"},
	} {
		p, err := c.CreateEventPublisher(logger)
		require.NoError(t, err)
		assert.IsType(t, &events.MockEventPublisher{}, p)
	}
}
