package sqlstore

import "fmt"

// Dialect selects the DDL flavour. DML is shared: both drivers take `?`
// placeholders and report LastInsertId.
type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite3"
)

func ParseDialect(driver string) (Dialect, error) {
	switch Dialect(driver) {
	case MySQL, SQLite:
		return Dialect(driver), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

func (d Dialect) createReviewsSQL() string {
	if d == MySQL {
		return createReviewsMySQL
	}
	return createReviewsSQLite
}

func (d Dialect) createEmployeeSQL() string {
	if d == MySQL {
		return createEmployeeMySQL
	}
	return createEmployeeSQLite
}

// -----------------------------------------------------------------------------
// SCHEMA
// -----------------------------------------------------------------------------

const createReviewsSQLite = `
CREATE TABLE IF NOT EXISTS reviews (
  id          INTEGER PRIMARY KEY,
  year        INT,
  summary     TEXT,
  employee_id INTEGER,
  FOREIGN KEY (employee_id) REFERENCES employee(id)
)`

// employee_id must match employee.id exactly for InnoDB to accept the FK.
const createReviewsMySQL = `
CREATE TABLE IF NOT EXISTS reviews (
  id          BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  year        INT,
  summary     TEXT,
  employee_id BIGINT,
  FOREIGN KEY (employee_id) REFERENCES employee(id)
)`

const dropReviewsSQL = `DROP TABLE IF EXISTS reviews`

const createEmployeeSQLite = `
CREATE TABLE IF NOT EXISTS employee (
  id        INTEGER PRIMARY KEY,
  name      TEXT,
  job_title TEXT
)`

const createEmployeeMySQL = `
CREATE TABLE IF NOT EXISTS employee (
  id        BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  name      VARCHAR(255),
  job_title VARCHAR(255)
)`

const dropEmployeeSQL = `DROP TABLE IF EXISTS employee`

// -----------------------------------------------------------------------------
// REVIEWS
// -----------------------------------------------------------------------------

const insertReviewSQL = `
INSERT INTO reviews (year, summary, employee_id)
VALUES (?, ?, ?)
`

const updateReviewSQL = `
UPDATE reviews
SET year = ?, summary = ?, employee_id = ?
WHERE id = ?
`

const deleteReviewSQL = `DELETE FROM reviews WHERE id = ?`

const selectReviewByIDSQL = `
SELECT id, year, summary, employee_id
FROM reviews
WHERE id = ?
`

// No ORDER BY: callers get whatever order storage returns.
const selectReviewsSQL = `SELECT id, year, summary, employee_id FROM reviews`

// -----------------------------------------------------------------------------
// EMPLOYEES
// -----------------------------------------------------------------------------

const insertEmployeeSQL = `INSERT INTO employee (name, job_title) VALUES (?, ?)`

const selectEmployeeByIDSQL = `SELECT id, name, job_title FROM employee WHERE id = ?`
