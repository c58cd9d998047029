package employee_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/siddheshp/ems-api-okta/internal/employee"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&employee.Employee{}))
	return db
}

func seedEmployee(t *testing.T, repo employee.Repository, email string) *employee.Employee {
	t.Helper()
	dob, _ := time.Parse("2006-01-02", "1990-01-15")
	empl := &employee.Employee{
		Name:         "John Doe",
		Email:        email,
		Salary:       50000,
		DateOfBirth:  dob,
		MobileNumber: 1234567890,
		DepartmentID: 1,
	}
	assert.NoError(t, repo.Create(context.Background(), empl))
	assert.NotZero(t, empl.ID, "insert must populate the generated id")
	return empl
}

func TestEmployeeRepository_CreateAndFind(t *testing.T) {
	db := setupRepoDB(t)
	repo := employee.NewRepository(db)
	ctx := context.Background()

	created := seedEmployee(t, repo, "john@test.com")

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, created.ID)
		assert.NoError(t, err)
		assert.Equal(t, "john@test.com", found.Email)
		assert.Equal(t, "1990-01-15", found.DateOfBirth.Format("2006-01-02"))
	})

	t.Run("find by email", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "john@test.com")
		assert.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("find by unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("find by unknown email", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "nobody@test.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("find all", func(t *testing.T) {
		seedEmployee(t, repo, "jane@test.com")
		all, err := repo.FindAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestEmployeeRepository_UniqueEmail(t *testing.T) {
	db := setupRepoDB(t)
	repo := employee.NewRepository(db)

	seedEmployee(t, repo, "john@test.com")

	dup := &employee.Employee{
		Name:         "Impostor",
		Email:        "john@test.com",
		Salary:       1,
		MobileNumber: 1234567890,
	}
	err := repo.Create(context.Background(), dup)
	assert.Error(t, err, "the unique index backstops the service-level check")
}

func TestEmployeeRepository_UpdateAndDelete(t *testing.T) {
	db := setupRepoDB(t)
	repo := employee.NewRepository(db)
	ctx := context.Background()

	created := seedEmployee(t, repo, "john@test.com")

	t.Run("update persists changed fields", func(t *testing.T) {
		created.Salary = 60000
		assert.NoError(t, repo.Update(ctx, created))

		found, err := repo.FindByID(ctx, created.ID)
		assert.NoError(t, err)
		assert.Equal(t, float64(60000), found.Salary)
		assert.Equal(t, "john@test.com", found.Email)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, created.ID))

		_, err := repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
