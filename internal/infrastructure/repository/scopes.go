package repository

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/bebidas-pos/internal/infrastructure/database"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// conn returns the transaction carried by ctx or the base connection
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	return database.Conn(ctx, db)
}

// ForUpdate locks the selected rows until the surrounding transaction ends
func ForUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Paginate applies offset and limit from page-based params
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	return func(db *gorm.DB) *gorm.DB {
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// Sorted orders by sortBy when it is one of the allowed columns, else by fallback
func Sorted(sortBy, sortOrder, fallback string, allowed ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column := fallback
		for _, a := range allowed {
			if a == sortBy {
				column = sortBy
				break
			}
		}
		direction := "DESC"
		if strings.EqualFold(sortOrder, "asc") {
			direction = "ASC"
		}
		return db.Order(column + " " + direction)
	}
}

// Search matches term case-insensitively against any of the columns
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + term + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, c := range columns {
			clauses[i] = c + " ILIKE ?"
			args[i] = like
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// Between keeps rows whose column falls in [from, to)
func Between(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", *from)
		}
		if to != nil {
			db = db.Where(column+" < ?", *to)
		}
		return db
	}
}
