package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jesses-code-adventures/facturier/internal/database"
	"github.com/jesses-code-adventures/facturier/internal/models"
)

const dateLayout = "2006-01-02"

// FacturierService owns the application state. Every mutation rewrites the whole state
// blob under a single storage key.
type FacturierService struct {
	db       database.DB
	key      string
	log      zerolog.Logger
	now      func() time.Time
	validate *validator.Validate

	mu    sync.RWMutex
	state *models.State
}

func NewFacturierService(db database.DB, storageKey string, log zerolog.Logger) *FacturierService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	return &FacturierService{
		db:       db,
		key:      storageKey,
		log:      log,
		now:      time.Now,
		validate: validate,
		state:    models.NewState(),
	}
}

// SetClock replaces the time source.
func (s *FacturierService) SetClock(now func() time.Time) {
	s.now = now
}

// Load reads the persisted state. A missing blob starts from defaults; so does an
// unreadable one, which is logged.
func (s *FacturierService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.db.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.state = models.NewState()
			return nil
		}
		s.log.Error().Err(err).Str("key", s.key).Msg("failed to load state")
		return &StorageError{Op: "load state", Err: err}
	}

	state, _, err := decodeState(data)
	if err != nil {
		s.log.Error().Err(err).Str("key", s.key).Msg("stored state is unreadable, starting from defaults")
		s.state = models.NewState()
		return nil
	}
	s.state = state
	return nil
}

// persist must be called with mu held.
func (s *FacturierService) persist(ctx context.Context, op string) error {
	data, err := json.Marshal(s.state)
	if err != nil {
		s.log.Error().Err(err).Str("op", op).Msg("failed to encode state")
		return &StorageError{Op: op, Err: err}
	}
	if err := s.db.Put(ctx, s.key, data); err != nil {
		s.log.Error().Err(err).Str("op", op).Msg("failed to save state, changes are only in memory")
		return &StorageError{Op: op, Err: err}
	}
	s.log.Debug().Str("op", op).Int("bytes", len(data)).Msg("state saved")
	return nil
}

// Reset deletes the stored state and starts over from defaults.
func (s *FacturierService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = models.NewState()
	if err := s.db.Delete(ctx, s.key); err != nil {
		s.log.Error().Err(err).Msg("failed to delete stored state")
		return &StorageError{Op: "reset state", Err: err}
	}
	return nil
}

func (s *FacturierService) Today() string {
	return s.now().Format(dateLayout)
}

// AddDays shifts an ISO date by a number of calendar days.
func AddDays(date string, days int) (string, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, err)
	}
	return d.AddDate(0, 0, days).Format(dateLayout), nil
}

func (s *FacturierService) validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		return &ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s is invalid (%s)", fe.Field(), rule),
		}
	}
	return &ValidationError{Message: err.Error()}
}
