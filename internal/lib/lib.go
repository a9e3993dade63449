// Package lib groups the building blocks that sit outside the
// handler/service/repository layers: Brazilian formatting (brfmt), CST
// tables (fiscal), CEP/CNPJ clients (lookup), PDF and XLSX rendering
// (report), the report email queue (job), the Resend client (email) and
// small helpers (utils).
package lib
