package controller

import (
	"strconv"

	"skill-exchange-be/internal/dto"
	"skill-exchange-be/internal/entity"
	"skill-exchange-be/internal/pkg/apperrors"
	"skill-exchange-be/internal/pkg/serverutils"
	"skill-exchange-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const defaultPageSize = 20

type ISkillController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	ListByUser(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	BulkDelete(ctx *fiber.Ctx) error
}

type skillController struct {
	skillService service.ISkillService
}

func NewSkillController(skillService service.ISkillService) ISkillController {
	return &skillController{
		skillService: skillService,
	}
}

func (c *skillController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/skill/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("search", c.Search)
	h.Get("users/:userId", c.ListByUser)
	h.Post("bulk-delete", c.BulkDelete)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func parseTypeFilter(ctx *fiber.Ctx) (*entity.SkillType, error) {
	raw := ctx.Query("type")
	if raw == "" {
		return nil, nil
	}
	t := entity.SkillType(raw)
	if !t.Valid() {
		return nil, apperrors.InvalidInput("invalid_skill_type", "Type must be INCOMING or OUTGOING")
	}
	return &t, nil
}

func parsePagination(ctx *fiber.Ctx) (limit, offset int) {
	limit = ctx.QueryInt("limit", defaultPageSize)
	if limit <= 0 {
		limit = defaultPageSize
	}
	offset = ctx.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func toSkillResponse(s *entity.Skill) *dto.SkillResponse {
	return &dto.SkillResponse{
		Id:          s.Id,
		Type:        string(s.Type),
		Name:        s.Name,
		Description: s.Description,
		UserId:      s.UserId,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toSkillResponses(skills []*entity.Skill) []*dto.SkillResponse {
	out := make([]*dto.SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, toSkillResponse(s))
	}
	return out
}

func (c *skillController) Create(ctx *fiber.Ctx) error {
	userId := serverutils.CurrentUserId(ctx)

	var req dto.CreateSkillRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	skill, err := c.skillService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create skill", toSkillResponse(skill)))
}

func (c *skillController) List(ctx *fiber.Ctx) error {
	typeFilter, err := parseTypeFilter(ctx)
	if err != nil {
		return err
	}
	limit, offset := parsePagination(ctx)

	skills, total, err := c.skillService.GetAll(ctx.Context(), typeFilter, limit, offset)
	if err != nil {
		return err
	}

	ctx.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return ctx.JSON(serverutils.SuccessResponse("Success list skills", serverutils.ListResponse[*dto.SkillResponse]{
		Items: toSkillResponses(skills),
		Total: total,
	}))
}

func (c *skillController) ListByUser(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Params("userId"))
	if err != nil {
		return apperrors.InvalidInput("invalid_user_id", "User id must be a UUID")
	}

	typeFilter, err := parseTypeFilter(ctx)
	if err != nil {
		return err
	}
	limit, offset := parsePagination(ctx)

	skills, total, err := c.skillService.GetUserSkills(ctx.Context(), userId, typeFilter, limit, offset)
	if err != nil {
		return err
	}

	ctx.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return ctx.JSON(serverutils.SuccessResponse("Success list user skills", serverutils.ListResponse[*dto.SkillResponse]{
		Items: toSkillResponses(skills),
		Total: total,
	}))
}

func (c *skillController) Search(ctx *fiber.Ctx) error {
	limit, offset := parsePagination(ctx)

	req := dto.SearchSkillsRequest{
		Query:  ctx.Query("query"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := ctx.Query("type"); raw != "" {
		req.Type = &raw
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	skills, total, err := c.skillService.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}

	ctx.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return ctx.JSON(serverutils.SuccessResponse("Success search skills", serverutils.ListResponse[*dto.SkillResponse]{
		Items: toSkillResponses(skills),
		Total: total,
	}))
}

func (c *skillController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid_skill_id", "Skill id must be a UUID")
	}

	skill, err := c.skillService.GetById(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show skill", toSkillResponse(skill)))
}

func (c *skillController) Update(ctx *fiber.Ctx) error {
	userId := serverutils.CurrentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid_skill_id", "Skill id must be a UUID")
	}

	var req dto.UpdateSkillRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	skill, err := c.skillService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update skill", toSkillResponse(skill)))
}

func (c *skillController) Delete(ctx *fiber.Ctx) error {
	userId := serverutils.CurrentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid_skill_id", "Skill id must be a UUID")
	}

	if err := c.skillService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete skill", fiber.Map{"id": id}))
}

func (c *skillController) BulkDelete(ctx *fiber.Ctx) error {
	userId := serverutils.CurrentUserId(ctx)

	var req dto.BulkDeleteSkillsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.skillService.BulkDelete(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete skills", fiber.Map{"deleted": len(req.Ids)}))
}
