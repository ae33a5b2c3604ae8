// Package domain contains the core business types for Docent: uploaded
// documents, indexed passages, conversation history, and interview
// bookings. It has no dependencies on adapters or external services.
package domain
