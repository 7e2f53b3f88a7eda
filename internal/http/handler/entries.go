package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wastetracker/internal/service"
)

// CreateEntry logs a food waste entry.
//
//	@Summary	Log wasted food
//	@Tags		entries
//	@Accept		json
//	@Produce	json
//	@Param		entry	body		service.AddEntryInput	true	"Waste entry"
//	@Success	201		{object}	service.AddEntryResult
//	@Failure	400		{object}	errorPayload
//	@Router		/entries [post]
func CreateEntry(svc service.WasteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.AddEntryInput
		if err := c.BodyParser(&in); err != nil {
			return serviceError(c, badRequest("INVALID_BODY", "request body must be a JSON object"))
		}
		res, err := svc.Add(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListEntries returns a page of entries.
//
//	@Summary	List waste entries
//	@Tags		entries
//	@Produce	json
//	@Param		limit	query		int		false	"1-100, default 10"
//	@Param		offset	query		int		false	"default 0"
//	@Param		sort	query		string	false	"date, food_item, category, quantity, unit, quantity_kg, reason, created_at"
//	@Param		order	query		string	false	"asc or desc"
//	@Success	200		{object}	service.EntryListResult
//	@Failure	400		{object}	errorPayload
//	@Router		/entries [get]
func ListEntries(svc service.WasteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c, 10)
		if err != nil {
			return serviceError(c, err)
		}
		res, err := svc.List(c.UserContext(), service.ListEntriesParams{
			Limit:  limit,
			Offset: offset,
			Sort:   c.Query("sort", "date"),
			Order:  c.Query("order", "desc"),
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetEntry returns one entry.
//
//	@Summary	Get a waste entry
//	@Tags		entries
//	@Produce	json
//	@Param		id	path		string	true	"Entry ID"
//	@Success	200	{object}	model.WasteEntry
//	@Failure	400	{object}	errorPayload
//	@Failure	404	{object}	errorPayload
//	@Router		/entries/{id} [get]
func GetEntry(svc service.WasteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return serviceError(c, badRequest("INVALID_ID", "invalid id format"))
		}
		e, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(e)
	}
}

// DeleteEntry removes one entry.
//
//	@Summary	Delete a waste entry
//	@Tags		entries
//	@Param		id	path	string	true	"Entry ID"
//	@Success	204
//	@Failure	400	{object}	errorPayload
//	@Failure	404	{object}	errorPayload
//	@Router		/entries/{id} [delete]
func DeleteEntry(svc service.WasteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return serviceError(c, badRequest("INVALID_ID", "invalid id format"))
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetStats summarizes waste over a period.
//
//	@Summary	Waste statistics
//	@Tags		stats
//	@Produce	json
//	@Param		period	query		string	false	"7days, 30days, month, year or all"
//	@Success	200		{object}	stats.Summary
//	@Router		/stats [get]
func GetStats(svc service.WasteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sum, err := svc.Stats(c.UserContext(), c.Query("period", "all"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(sum)
	}
}

// GetChart returns a plottable series.
//
//	@Summary	Chart series
//	@Tags		stats
//	@Produce	json
//	@Param		kind	path		string	true	"daily, category or monthly"
//	@Param		period	query		string	false	"7days, 30days, month, year or all"
//	@Success	200		{object}	stats.Chart
//	@Failure	400		{object}	errorPayload
//	@Router		/charts/{kind} [get]
func GetChart(svc service.WasteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		chart, err := svc.Chart(c.UserContext(), c.Params("kind"), c.Query("period", "all"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(chart)
	}
}
