package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wastetracker/docs"
	"wastetracker/internal/http/middleware"
	"wastetracker/internal/service"
)

// Pinger reports database reachability. *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the routes are bound to.
type Deps struct {
	DB     Pinger
	Waste  service.WasteService
	Images service.FoodImageService
	Chat   service.ChatService
	// Gatherer backs /metrics; nil means the default registry.
	Gatherer prometheus.Gatherer
	// StaticDir, when set, is served at / after every API route.
	StaticDir string
	// PublicHost is the host:port advertised in the swagger document.
	// Empty means the host that served the page.
	PublicHost string
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", SwaggerUI(d.PublicHost))

	// Endpoints used by the browser front ends.
	app.Post("/analyze", Analyze(d.Images))
	app.Post("/upload", Upload(d.Images))
	app.Post("/chat", Chat(d.Chat))

	app.Get("/entries", ListEntries(d.Waste))
	app.Post("/entries", CreateEntry(d.Waste))
	app.Get("/entries/:id", GetEntry(d.Waste))
	app.Delete("/entries/:id", DeleteEntry(d.Waste))
	app.Get("/stats", GetStats(d.Waste))
	app.Get("/charts/:kind", GetChart(d.Waste))

	app.Get("/images", ListImages(d.Images))
	app.Get("/images/:id", GetImage(d.Images))

	if d.StaticDir != "" {
		app.Static("/", d.StaticDir)
	}
}

// HealthCheck pings the database.
//
//	@Summary	Readiness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	errorPayload
//	@Router		/health [get]
func HealthCheck(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// SwaggerUI serves the API docs. The advertised host is fixed here, once,
// because docs.SwaggerInfo is shared by every request.
func SwaggerUI(host string) fiber.Handler {
	docs.SwaggerInfo.Host = host
	return swagger.HandlerDefault
}

// pageParams reads limit and offset query parameters.
func pageParams(c *fiber.Ctx, defaultLimit int) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if err != nil {
		return 0, 0, badRequest("INVALID_LIMIT", "invalid limit")
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, badRequest("INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, nil
}
