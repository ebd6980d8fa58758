package db

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"taskflow/internal/config"
)

const defaultParams = "parseTime=true&multiStatements=true"

func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", BuildDSN(conf.DbUser, conf.DbPassword, conf.DbHost, conf.DbPort, conf.DbName, conf.DbParams))
	if err != nil {
		return nil, err
	}

	return db, nil
}

// BuildDSN omits the database segment when name is empty, which is what
// the integration suite needs to create its throwaway schema.
func BuildDSN(user, password, host, port, name, params string) string {
	if params == "" {
		params = defaultParams
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, name, params)
}
