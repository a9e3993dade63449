package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/agro-backend/internal/errs"
	"github.com/deppfellow/agro-backend/internal/notify"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tableEntities maps table names to their catalog entity so messages can use
// the same display names as notifications.
var tableEntities = map[string]notify.Entity{
	"tenants":        notify.EntityTenant,
	"granjas":        notify.EntityGranja,
	"lavouras":       notify.EntityLavoura,
	"culturas":       notify.EntityCultura,
	"produtos":       notify.EntityProduto,
	"safras":         notify.EntitySafra,
	"silos":          notify.EntitySilo,
	"analises_solo":  notify.EntityAnaliseSolo,
	"pluviometria":   notify.EntityPluviometria,
	"produtores":     notify.EntityProdutor,
	"inscricoes":     notify.EntityInscricao,
	"colheitas":      notify.EntityColheita,
	"transferencias": notify.EntityTransferencia,
	"notas_fiscais":  notify.EntityNotaFiscal,
}

// uniqueKeyPattern matches "<table>_<column>_key" / "<table>_<column>_ukey" constraint names.
var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the Code of err when it wraps an *Error, Other otherwise.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a raw pgconn.PgError into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates machine-friendly codes in the form <ENTITY>_<ACTION>,
// e.g. silos + UniqueViolation => SILO_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if entity, ok := tableEntities[tableName]; ok {
		domain = strings.ToUpper(string(entity))
	} else if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidText, NumericOutOfRange, StringTooLong:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the end-user message for a database error.
// These strings end up inside error notifications.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		if isReferencedDelete(sqlErr) {
			return fmt.Sprintf("Registro em uso: existem registros de %s vinculados", strings.ToLower(getEntityName(sqlErr.TableName, "")))
		}
		return fmt.Sprintf("Referência inválida: %s não existe", entityName)

	case UniqueViolation:
		// "identificador" is replaced by the column when the constraint name reveals it.
		return fmt.Sprintf("Já existe um registro de %s com o mesmo identificador", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "informado"
		}
		return fmt.Sprintf("O campo %s é obrigatório", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("O valor de %s não atende às condições exigidas", fieldName)
		}
		return "Um ou mais valores não atendem às condições exigidas"

	case InvalidText, NumericOutOfRange, StringTooLong:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("Valor inválido para %s", fieldName)
		}
		return "Um ou mais valores são inválidos"

	default:
		return "Ocorreu um erro ao processar sua solicitação"
	}
}

// getEntityName infers a display name from table/column data.
//
// Priority:
//  1. column "<entity>_id" (or "<entity>_<role>_id") names the referenced entity.
//  2. the table name.
//  3. "registro".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		base := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		for {
			if name, ok := entityDisplayName(base); ok {
				return name
			}
			cut := strings.LastIndex(base, "_")
			if cut <= 0 {
				break
			}
			base = base[:cut]
		}
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}

	if tableName != "" {
		if entity, ok := tableEntities[tableName]; ok {
			return notify.Name(language.BrazilianPortuguese, entity)
		}
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "registro"
}

// isReferencedDelete reports whether a foreign key violation was raised by
// deleting (or re-keying) a row that other rows still reference. PostgreSQL
// then reports the referencing table, not the one being modified.
func isReferencedDelete(sqlErr *Error) bool {
	return strings.HasPrefix(sqlErr.Message, "update or delete on table")
}

func entityDisplayName(base string) (string, bool) {
	for _, entity := range tableEntities {
		if string(entity) == base {
			return notify.Name(language.BrazilianPortuguese, entity), true
		}
	}
	return "", false
}

// humanizeText converts snake_case into Title Case ("data_coleta" -> "Data Coleta").
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.BrazilianPortuguese).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from a unique constraint name.
//
// Supported conventions:
//
//  1. "unique_<table>_<column>"      unique_silos_nome -> "nome"
//  2. "<table>_<column>_(key|ukey)"  safras_nome_key   -> "nome"
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
//   - *errs.HTTPError: returned unchanged
//   - *pgconn.PgError: mapped to a 400 with a specific code, or a 500
//   - ErrNoRows: mapped to a 404; "table:<name>:" in the message names the entity
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			if isReferencedDelete(sqlErr) {
				errorCode = strings.TrimSuffix(errorCode, "_NOT_FOUND") + "_IN_USE"
				return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)
			}
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identificador", strings.ToLower(humanizeText(columnName)))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation, InvalidText, NumericOutOfRange, StringTooLong:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		errMsg := err.Error()
		tablePrefix := "table:"
		if strings.Contains(errMsg, tablePrefix) {
			table := strings.Split(strings.Split(errMsg, tablePrefix)[1], ":")[0]
			entityName := strings.ToLower(getEntityName(table, ""))
			return errs.NewNotFoundError(fmt.Sprintf("Registro de %s não encontrado", entityName), true, nil)
		}
		return errs.NewNotFoundError("Registro não encontrado", false, nil)
	}

	return errs.NewInternalServerError()
}
