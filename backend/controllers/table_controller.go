package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"fitnessfiend/backend/config"
	"fitnessfiend/backend/query"
	"fitnessfiend/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TableController is the generic passthrough API: structured reads and
// writes against any allowlisted table, for front end pages that do not
// have a dedicated endpoint.
type TableController struct {
	Queries *query.Manager
	Cfg     *config.Config
}

func NewTableController(db *gorm.DB, cfg *config.Config) *TableController {
	return &TableController{Queries: query.New(db), Cfg: cfg}
}

// dateFormat matches what the front end renders verbatim.
const dateFormat = "02/01/2006, 15:04:05"

type tableRequest struct {
	Columns []string               `json:"columns"`
	Where   map[string]interface{} `json:"where"`
	Data    map[string]interface{} `json:"data"`
}

func parseTableRequest(c *fiber.Ctx) tableRequest {
	var req tableRequest
	// Запросы без тела допустимы — тогда все строки и все колонки
	if err := c.BodyParser(&req); err != nil {
		return tableRequest{}
	}
	return req
}

// statusForQueryError maps query layer errors onto HTTP statuses instead of
// answering 201 for everything.
func statusForQueryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, query.ErrUnknownTable):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, query.ErrUnknownColumn), errors.Is(err, query.ErrMalformedQuery):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, query.ErrNotFound):
		return utils.NotFound(c, err.Error())
	default:
		return utils.InternalServerError(c, "Storage failure")
	}
}

// formatRows reshapes rows into the row-index -> column map structure the
// front end expects, with dates rendered as strings.
func formatRows(rows []query.Row) map[int]map[string]interface{} {
	result := make(map[int]map[string]interface{}, len(rows))
	for i, row := range rows {
		formatted := make(map[string]interface{}, len(row))
		for column, value := range row {
			switch v := value.(type) {
			case time.Time:
				formatted[column] = v.Format(dateFormat)
			case *time.Time:
				if v != nil {
					formatted[column] = v.Format(dateFormat)
				} else {
					formatted[column] = nil
				}
			default:
				formatted[column] = value
			}
		}
		result[i] = formatted
	}
	return result
}

// idCondition narrows a request to one row by the table's primary key.
func idCondition(table string, rawID string) (query.Condition, error) {
	pk := query.PrimaryKey(table)
	if pk == "" {
		return query.Condition{}, fmt.Errorf("%w: table %q has no primary key", query.ErrMalformedQuery, table)
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return query.Condition{}, fmt.Errorf("%w: id %q is not a number", query.ErrMalformedQuery, rawID)
	}
	return query.Eq(pk, id), nil
}

// FetchRows godoc
// @Summary Read rows from a table
// @Description Body may carry {"columns": [...], "where": {...}}; both optional
// @Tags table
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/{table} [get]
func (tc *TableController) FetchRows(c *fiber.Ctx) error {
	req := parseTableRequest(c)
	table := c.Params("table")

	conds := query.ConditionsFromMap(req.Where)
	rows, err := tc.Queries.Fetch(table, req.Columns, conds, query.AndConnectors(len(conds)))
	if err != nil {
		return statusForQueryError(c, err)
	}

	return c.JSON(formatRows(rows))
}

// FetchRowByID is FetchRows narrowed to one primary key value.
func (tc *TableController) FetchRowByID(c *fiber.Ctx) error {
	req := parseTableRequest(c)
	table := c.Params("table")

	cond, err := idCondition(table, c.Params("id"))
	if err != nil {
		return statusForQueryError(c, err)
	}
	conds := append(query.ConditionsFromMap(req.Where), cond)

	rows, err := tc.Queries.Fetch(table, req.Columns, conds, query.AndConnectors(len(conds)))
	if err != nil {
		return statusForQueryError(c, err)
	}

	return c.JSON(formatRows(rows))
}

// UpdateRows godoc
// @Summary Update rows in a table
// @Description Body carries {"data": {...}, "where": {...}}. An empty where
// @Description updates every row of the table.
// @Tags table
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/{table} [post]
func (tc *TableController) UpdateRows(c *fiber.Ctx) error {
	req := parseTableRequest(c)
	table := c.Params("table")

	if len(req.Data) == 0 {
		return utils.BadRequest(c, "Data is required for POST method")
	}

	conds := query.ConditionsFromMap(req.Where)
	if err := tc.Queries.Update(table, req.Data, conds, query.AndConnectors(len(conds))); err != nil {
		return statusForQueryError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Rows of %s have been updated", table),
	})
}

// UpdateRowByID is UpdateRows narrowed to one primary key value.
func (tc *TableController) UpdateRowByID(c *fiber.Ctx) error {
	req := parseTableRequest(c)
	table := c.Params("table")

	if len(req.Data) == 0 {
		return utils.BadRequest(c, "Data is required for POST method")
	}

	cond, err := idCondition(table, c.Params("id"))
	if err != nil {
		return statusForQueryError(c, err)
	}
	conds := append(query.ConditionsFromMap(req.Where), cond)

	if err := tc.Queries.Update(table, req.Data, conds, query.AndConnectors(len(conds))); err != nil {
		return statusForQueryError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Rows of %s have been updated", table),
	})
}

// InsertRow godoc
// @Summary Insert one row into a table
// @Tags table
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/{table} [put]
func (tc *TableController) InsertRow(c *fiber.Ctx) error {
	req := parseTableRequest(c)
	table := c.Params("table")

	if len(req.Data) == 0 {
		return utils.BadRequest(c, "Data is required for PUT method")
	}

	if err := tc.Queries.InsertOne(table, req.Data); err != nil {
		return statusForQueryError(c, err)
	}

	response := fiber.Map{"message": "success"}
	if id, err := tc.Queries.LastInsertedID(); err == nil {
		response["id"] = id
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// DeleteRows godoc
// @Summary Delete rows from a table
// @Description The where clause is mandatory here: a bare DELETE would wipe
// @Description the whole table.
// @Tags table
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/{table} [delete]
func (tc *TableController) DeleteRows(c *fiber.Ctx) error {
	req := parseTableRequest(c)
	table := c.Params("table")

	conds := query.ConditionsFromMap(req.Where)
	if len(conds) == 0 {
		return utils.BadRequest(c, "A where clause is required for DELETE")
	}

	if err := tc.Queries.Delete(table, conds, query.AndConnectors(len(conds))); err != nil {
		return statusForQueryError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Rows of %s have been deleted", table),
	})
}
