// Package lib holds integrations that do not belong to a single layer:
// background job processing (Redis/Asynq) and transactional email (Resend).
package lib
