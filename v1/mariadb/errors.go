package mariadb

import (
	"errors"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

// Server error numbers the facade cares about.
const (
	ErDupEntry         = 1062
	ErNoReferencedRow2 = 1452
	ErLockWaitTimeout  = 1205
	ErLockDeadlock     = 1213
)

// ErrorCode returns the server error number of err as a string, or "" when err
// did not originate from the server.
func (Dialect) ErrorCode(err error) string {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return strconv.Itoa(int(myErr.Number))
	}
	return ""
}

// IsRetryable reports deadlocks and lock wait timeouts.
func (Dialect) IsRetryable(err error) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return errors.Is(err, mysql.ErrInvalidConn)
	}
	return myErr.Number == ErLockDeadlock || myErr.Number == ErLockWaitTimeout
}
