// Package lib groups supporting libraries that do not belong to a layer:
// background jobs (asynq), transactional email (resend), spreadsheet
// export (excelize) and small utilities.
package lib
