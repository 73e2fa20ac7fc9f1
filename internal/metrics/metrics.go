// Package metrics exposes Prometheus counters for played games and a small
// HTTP API with the metrics endpoint and the high-score table.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-invaders/internal/invaders"
)

const namespace = "invaders"

// Collector owns the game metrics on a private registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	gamesStarted prometheus.Counter
	gamesOver    prometheus.Counter
	kills        prometheus.Counter
	shots        prometheus.Counter
	waves        prometheus.Counter
	hits         *prometheus.CounterVec
	powerUps     *prometheus.CounterVec
	sessions     prometheus.Gauge
	finalScore   prometheus.Histogram
}

// New creates a collector and registers its metrics.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		gamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games started from home or replay.",
		}),
		gamesOver: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_over_total",
			Help:      "Games that reached game over.",
		}),
		kills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aliens_killed_total",
			Help:      "Aliens destroyed by player bullets.",
		}),
		shots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_bullets_fired_total",
			Help:      "Bullets fired by players.",
		}),
		waves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "waves_cleared_total",
			Help:      "Alien waves cleared.",
		}),
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_hits_total",
			Help:      "Lives lost, by cause.",
		}, []string{"cause"}),
		powerUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "powerups_collected_total",
			Help:      "Power-ups collected, by kind.",
		}, []string{"kind"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Connected play sessions.",
		}),
		finalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Score at game over.",
			Buckets:   []float64{0, 500, 1000, 2400, 5000, 10000, 25000},
		}),
	}

	c.registry.MustRegister(
		c.gamesStarted, c.gamesOver, c.kills, c.shots, c.waves,
		c.hits, c.powerUps, c.sessions, c.finalScore,
	)
	return c
}

// Registry returns the private registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// GameStarted counts a new game.
func (c *Collector) GameStarted() {
	if c == nil {
		return
	}
	c.gamesStarted.Inc()
}

// SessionOpened tracks a connected player.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.sessions.Inc()
}

// SessionClosed tracks a disconnected player.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.sessions.Dec()
}

// Observe records the events raised by one tick or poll.
func (c *Collector) Observe(events []invaders.Event) {
	if c == nil {
		return
	}
	for _, ev := range events {
		switch ev := ev.(type) {
		case invaders.KillEvent:
			c.kills.Inc()
		case invaders.ShotFiredEvent:
			c.shots.Add(float64(ev.Bullets))
		case invaders.PlayerHitEvent:
			c.hits.WithLabelValues(hitCause(ev.Cause)).Inc()
		case invaders.PowerUpCollectedEvent:
			c.powerUps.WithLabelValues(ev.Kind.String()).Inc()
		case invaders.WaveClearedEvent:
			c.waves.Inc()
		case invaders.GameOverEvent:
			c.gamesOver.Inc()
			c.finalScore.Observe(float64(ev.Score))
		}
	}
}

func hitCause(c invaders.HitCause) string {
	if c == invaders.HitByInvasion {
		return "invasion"
	}
	return "bullet"
}
