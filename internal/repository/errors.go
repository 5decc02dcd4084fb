package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

// PostgreSQL SQLSTATE
const (
	pgExclusionViolation  = "23P01"
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translateError 将约束冲突转换为业务错误分类，其他错误原样返回
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgExclusionViolation:
		return fmt.Errorf("%w: %s", pkgerrors.ErrOverlap, pgErr.ConstraintName)
	case pgUniqueViolation:
		// uk_<table>_slot 是实体内同一时间段的唯一索引
		if strings.HasPrefix(pgErr.ConstraintName, "uk_") && strings.HasSuffix(pgErr.ConstraintName, "_slot") {
			return fmt.Errorf("%w: %s", pkgerrors.ErrDuplicate, pgErr.ConstraintName)
		}
		return fmt.Errorf("%w: 唯一约束 %s", pkgerrors.ErrIntegrity, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: 外键约束 %s", pkgerrors.ErrIntegrity, pgErr.ConstraintName)
	case pgCheckViolation:
		return fmt.Errorf("%w: 检查约束 %s", pkgerrors.ErrValidation, pgErr.ConstraintName)
	}
	return err
}
