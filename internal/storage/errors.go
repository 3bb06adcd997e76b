package storage

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/guttosm/finpulse/internal/apperr"
)

const queryErrorMessage = "Error encountered when exec query"

// MySQL client/server error numbers that mean the server is unreachable or
// refused the connection.
var mysqlUnavailable = map[uint16]struct{}{
	1040: {}, // too many connections
	1053: {}, // server shutdown in progress
	2002: {}, // can't connect through socket
	2003: {}, // can't connect to server
	2006: {}, // server has gone away
	2013: {}, // lost connection during query
}

// classify converts a driver error into an *apperr.Error so callers can tell
// an unreachable store from a failing statement.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if unavailable(err) {
		return apperr.Wrap(apperr.KindStoreUnavailable, queryErrorMessage, err)
	}
	return apperr.Wrap(apperr.KindStore, queryErrorMessage, err)
}

func unavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// SQLSTATE class 08: connection exception; 57P03: cannot connect now
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08" || pqErr.Code == "57P03"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		_, ok := mysqlUnavailable[myErr.Number]
		return ok
	}

	return false
}
