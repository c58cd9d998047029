package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	employeeerrors "github.com/siddheshp/ems-api-okta/internal/employee/errors"
	"github.com/siddheshp/ems-api-okta/internal/events"
	"github.com/siddheshp/ems-api-okta/internal/messaging/kafka"
	"github.com/siddheshp/ems-api-okta/internal/shared/contextutil"
)

const (
	ListCacheKey = "employees:all"
	listCacheTTL = 30 * time.Minute

	dateLayout = "2006-01-02"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id uint) (EmployeeResponse, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	// Duplicate check first; the insert must never run for a taken email.
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !isNotFound(err) {
		s.logger.Error("create employee duplicate check failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if existing != nil {
		s.logger.Warn("create employee duplicate email", zap.String("email", req.Email))
		return EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
	}

	dateOfBirth, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		s.logger.Warn("create employee invalid dateOfBirth",
			zap.String("dateOfBirth", req.DateOfBirth),
			zap.Error(err),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateOfBirth
	}

	empl := &Employee{
		Name:         req.Name,
		Email:        req.Email,
		Salary:       req.Salary,
		DateOfBirth:  dateOfBirth,
		MobileNumber: req.MobileNumber,
		DepartmentID: req.DepartmentID,
	}

	if err := s.repo.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.queueCreatedEvent(ctx, rid, empl)
	s.invalidateListCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", empl.ID),
	)

	return mapToResponse(*empl), nil
}

// queueCreatedEvent writes an outbox row for the relay worker. The record
// is already committed at this point, so a failed outbox write is logged
// rather than failing the request.
func (s *service) queueCreatedEvent(ctx context.Context, rid string, empl *Employee) {
	if s.outbox == nil {
		return
	}

	event := events.EmployeeCreatedEvent{
		EventType:  "employee_created",
		RequestID:  rid,
		EmployeeID: empl.ID,
		Email:      empl.Email,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal employee created event failed", zap.Error(err))
		return
	}

	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   fmt.Sprintf("%d", empl.ID),
		EventType:     event.EventType,
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("create employee outbox persist failed",
			zap.Uint("employee_id", empl.ID),
			zap.Error(err),
		)
	}
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ListCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Collapse concurrent misses into one store read.
	v, err, _ := s.sf.Do(ListCacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			s.logger.Error("get all employees failed", zap.Error(err))
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, ListCacheKey, data, listCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.Uint("employee_id", id))

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := applyUpdate(empl, req); err != nil {
		return EmployeeResponse{}, err
	}

	if err := s.repo.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)
	s.logger.Info("update employee success", zap.Uint("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	s.logger.Debug("delete employee requested", zap.Uint("employee_id", id))

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)
	s.logger.Info("delete employee success", zap.Uint("employee_id", id))
	return nil
}

// applyUpdate merges only the supplied fields onto the loaded record.
// Absent fields keep their stored values.
func applyUpdate(empl *Employee, req UpdateEmployeeRequest) error {
	if req.Name != nil {
		empl.Name = *req.Name
	}
	if req.Email != nil {
		empl.Email = *req.Email
	}
	if req.Salary != nil {
		empl.Salary = *req.Salary
	}
	if req.DateOfBirth != nil {
		dateOfBirth, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return employeeerrors.ErrInvalidDateOfBirth
		}
		empl.DateOfBirth = dateOfBirth
	}
	if req.MobileNumber != nil {
		empl.MobileNumber = *req.MobileNumber
	}
	if req.DepartmentID != nil {
		empl.DepartmentID = *req.DepartmentID
	}
	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ListCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", ListCacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           empl.ID,
		Name:         empl.Name,
		Email:        empl.Email,
		Salary:       empl.Salary,
		DateOfBirth:  empl.DateOfBirth.Format(dateLayout),
		MobileNumber: empl.MobileNumber,
		DepartmentID: empl.DepartmentID,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
