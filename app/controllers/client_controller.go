package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RafaelMoura/SalonFlow/app/models"
	"github.com/RafaelMoura/SalonFlow/app/repository"
)

// HandleListClients returns a salon's client book, paginated.
func HandleListClients(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)

	repo := repository.GetGlobalFactory().GetClientRepository()
	clients, err := repo.GetByMerchantID(uint(merchantID), offset, limit)
	if err != nil {
		return internalError(c, "could not list clients")
	}
	total, err := repo.CountByMerchantID(uint(merchantID))
	if err != nil {
		return internalError(c, "could not count clients")
	}

	return c.JSON(fiber.Map{"clients": clients, "total": total})
}

// HandleCreateClient registers a customer in the salon's client book.
func HandleCreateClient(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}

	var client models.Client
	if err := c.BodyParser(&client); err != nil {
		return badRequest(c, "invalid request body")
	}
	client.ID = 0
	client.MerchantID = uint(merchantID)
	if err := client.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetClientRepository().Create(&client); err != nil {
		return internalError(c, "could not create client")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"client": client})
}

// HandleUpdateClient updates a customer record.
func HandleUpdateClient(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}
	clientID, err := c.ParamsInt("clientID")
	if err != nil || clientID <= 0 {
		return badRequest(c, "invalid client id")
	}

	repo := repository.GetGlobalFactory().GetClientRepository()
	client, err := repo.GetByID(uint(clientID))
	if err != nil || client.MerchantID != uint(merchantID) {
		return notFound(c, "client not found")
	}

	if err := c.BodyParser(client); err != nil {
		return badRequest(c, "invalid request body")
	}
	client.ID = uint(clientID)
	client.MerchantID = uint(merchantID)
	if err := client.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repo.Update(client); err != nil {
		return internalError(c, "could not update client")
	}
	return c.JSON(fiber.Map{"client": client})
}

// HandleDeleteClient soft-deletes a customer record.
func HandleDeleteClient(c *fiber.Ctx) error {
	merchantID, err := c.ParamsInt("merchantID")
	if err != nil || merchantID <= 0 {
		return badRequest(c, "invalid merchant id")
	}
	clientID, err := c.ParamsInt("clientID")
	if err != nil || clientID <= 0 {
		return badRequest(c, "invalid client id")
	}

	repo := repository.GetGlobalFactory().GetClientRepository()
	client, err := repo.GetByID(uint(clientID))
	if err != nil || client.MerchantID != uint(merchantID) {
		return notFound(c, "client not found")
	}
	if err := repo.Delete(uint(clientID)); err != nil {
		return internalError(c, "could not delete client")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
