package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// @Summary Request certificate
// @Description Manual trigger; identical to the automatic one, including
// idempotence. Rejected while the course is not fully completed.
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Router /api/courses/{id}/certificate [post]
func (c *CertificateController) RequestCertificate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))

	cert, err := c.CertificateService.RequestCertificate(claims.UserID, courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, cert)
}

// @Summary My certificates
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Router /api/certificates [get]
func (c *CertificateController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	certs, err := c.CertificateService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, certs)
}

// @Summary Verify certificate
// @Description Public lookup of an issued certificate by its number.
// @Tags certificates
// @Produce json
// @Router /api/certificates/verify/{number} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	number := ctx.Param("number")
	if number == "" {
		util.BadRequest(ctx, "missing certificate number")
		return
	}

	cert, err := c.CertificateService.VerifyByNumber(number)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, cert)
}
