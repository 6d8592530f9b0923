package devserver

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/five82/foreman/internal/factory"
)

// Options configure the dev server.
type Options struct {
	// Token, when set, is required as a bearer token on every /api request.
	Token  string
	Logger zerolog.Logger
}

type server struct {
	store    *Store
	token    string
	log      zerolog.Logger
	validate *validator.Validate
}

// New builds the fiber app serving the attendance API from store.
func New(store *Store, opts Options) *fiber.App {
	s := &server{
		store:    store,
		token:    strings.TrimSpace(opts.Token),
		log:      opts.Logger,
		validate: validator.New(),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	app.Use(s.requestID)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api/companies/:company", s.auth)
	api.Get("/employees", s.listEmployees)
	api.Get("/branches", s.listBranches)
	api.Get("/attendance", s.getMonth)
	api.Post("/attendance", s.createRecord)
	api.Post("/attendance/mark-present", s.markPresent)
	api.Put("/attendance/:recordId", s.updateRecord)
	api.Delete("/attendance", s.clearMonth)
	return app
}

// Run serves the app on addr until ctx is cancelled.
func Run(ctx context.Context, app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() { errCh <- app.Listen(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	}
}

func (s *server) requestID(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("X-Request-ID", id)
	start := time.Now()
	err := c.Next()
	s.log.Debug().
		Str("request_id", id).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("took", time.Since(start)).
		Msg("request")
	return err
}

func (s *server) auth(c *fiber.Ctx) error {
	if s.token == "" {
		return c.Next()
	}
	if c.Get(fiber.HeaderAuthorization) != "Bearer "+s.token {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid or missing bearer token")
	}
	return c.Next()
}

func (s *server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, errUnknownCompany), errors.Is(err, errUnknownRecord):
		code = fiber.StatusNotFound
	case errors.Is(err, errDuplicate):
		code = fiber.StatusConflict
	case errors.Is(err, errDayOutOfRange):
		code = fiber.StatusUnprocessableEntity
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (s *server) bind(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(dest); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, verrs[0].Namespace()+" fails "+verrs[0].Tag())
		}
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

func (s *server) listEmployees(c *fiber.Ctx) error {
	emps, err := s.store.Employees(c.Params("company"))
	if err != nil {
		return err
	}
	return c.JSON(emps)
}

func (s *server) listBranches(c *fiber.Ctx) error {
	branches, err := s.store.Branches(c.Params("company"))
	if err != nil {
		return err
	}
	return c.JSON(branches)
}

func (s *server) monthQuery(c *fiber.Ctx) (int, int, error) {
	year := c.QueryInt("year")
	month := c.QueryInt("month")
	if year < 1970 || month < 1 || month > 12 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "year and month query parameters are required")
	}
	return year, month, nil
}

func (s *server) getMonth(c *fiber.Ctx) error {
	year, month, err := s.monthQuery(c)
	if err != nil {
		return err
	}
	rows, err := s.store.Month(c.Params("company"), year, month)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func (s *server) createRecord(c *fiber.Ctx) error {
	var req factory.CreateRecordRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	id, err := s.store.Create(c.Params("company"), req)
	if err != nil {
		return err
	}
	s.log.Info().Str("employee", req.EmployeeID).Str("record", id).Int("days", len(req.Records)).Msg("record created")
	return c.Status(fiber.StatusCreated).JSON(factory.CreateRecordResponse{RecordID: id})
}

func (s *server) updateRecord(c *fiber.Ctx) error {
	var req factory.UpdateRecordRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	recordID := c.Params("recordId")
	if err := s.store.Update(c.Params("company"), recordID, req); err != nil {
		return err
	}
	s.log.Info().Str("record", recordID).Int("days", len(req.Records)).Msg("record updated")
	return c.JSON(factory.Ack{OK: true})
}

func (s *server) markPresent(c *fiber.Ctx) error {
	var req factory.MarkPresentRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	n, err := s.store.MarkPresent(c.Params("company"), req)
	if err != nil {
		return err
	}
	s.log.Debug().Str("branch", req.BranchID).Int("day", req.Day).Int("employees", n).Msg("marked present")
	return c.JSON(factory.Ack{OK: true})
}

func (s *server) clearMonth(c *fiber.Ctx) error {
	year, month, err := s.monthQuery(c)
	if err != nil {
		return err
	}
	if err := s.store.Clear(c.Params("company"), year, month); err != nil {
		return err
	}
	return c.JSON(factory.Ack{OK: true})
}
