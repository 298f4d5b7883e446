package handlers

import (
	"strconv"

	"splitr/internal/models"
	"splitr/internal/services/group"
	"splitr/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type GroupHandler struct {
	groupService group.Service
}

func NewGroupHandler(groupService group.Service) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// CreateGroup makes the caller the owner and resolves the member list
// from usernames; any unknown username fails the whole create.
func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input group.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	created, err := h.groupService.Create(claims.UserID, input)
	if err != nil {
		return utils.Domain(c, err)
	}
	return utils.Created(c, fiber.Map{
		"message": "group created",
		"group":   created,
	})
}

func (h *GroupHandler) GetGroup(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	groupID, err := parseID(c, "groupId")
	if err != nil {
		return utils.BadRequest(c, "invalid group id")
	}

	g, err := h.groupService.Get(claims, groupID)
	if err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, fiber.Map{"group": g})
}

// UpdateGroup partially updates name / total amount / member list.
func (h *GroupHandler) UpdateGroup(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	groupID, err := parseID(c, "groupId")
	if err != nil {
		return utils.BadRequest(c, "invalid group id")
	}

	var input group.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	updated, err := h.groupService.Update(claims, groupID, input)
	if err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, fiber.Map{
		"message": "group updated",
		"group":   updated,
	})
}

func (h *GroupHandler) AddMembers(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	groupID, err := parseID(c, "groupId")
	if err != nil {
		return utils.BadRequest(c, "invalid group id")
	}

	var input struct {
		Usernames []string `json:"usernames"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	result, err := h.groupService.AddMembers(claims, groupID, input.Usernames)
	if err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, fiber.Map{
		"message": result.Message,
		"added":   result.Added,
		"group":   result.Group,
	})
}

func (h *GroupHandler) RemoveMember(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	groupID, err := parseID(c, "groupId")
	if err != nil {
		return utils.BadRequest(c, "invalid group id")
	}
	memberID, err := parseID(c, "memberId")
	if err != nil {
		return utils.BadRequest(c, "invalid member id")
	}

	if err := h.groupService.RemoveMember(claims, groupID, memberID); err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "member removed"})
}

// LeaveGroup is self-service removal; the owner can never leave.
func (h *GroupHandler) LeaveGroup(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	groupID, err := parseID(c, "groupId")
	if err != nil {
		return utils.BadRequest(c, "invalid group id")
	}

	if err := h.groupService.Leave(claims.UserID, groupID); err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "left the group"})
}

// DeleteGroup hard-deletes a group; the id travels in the body.
func (h *GroupHandler) DeleteGroup(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input struct {
		GroupID uint `json:"groupId"`
	}
	if err := c.BodyParser(&input); err != nil || input.GroupID == 0 {
		return utils.BadRequest(c, "groupId is required")
	}

	if err := h.groupService.Delete(claims, input.GroupID); err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "group deleted"})
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
