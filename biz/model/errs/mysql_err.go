package errs

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysql 1062: duplicate entry for a unique key
const mysqlDuplicateEntry = 1062

func IsDuplicatedErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return false
}
