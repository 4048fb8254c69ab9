package middleware

import (
	"net/http"

	patientRepo "praxis/database/repository/patient"
	"praxis/utils"

	"github.com/gin-gonic/gin"
)

// PatientAuthMiddleware authenticates a patient portal bearer token. The
// patient record is loaded on every request: portal access can be revoked by
// the provider at any moment, and downstream handlers need the owning
// provider's ID.
func PatientAuthMiddleware(patients patientRepo.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		accountID, role, err := utils.ExtractIDAndRoleFromToken(tokenString)
		if err != nil || accountID == "" || role != "patient" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		pat, err := patients.GetByID(c.Request.Context(), accountID)
		if err != nil || pat == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if !pat.PortalEnabled || pat.Status != "active" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Portal access disabled"})
			return
		}
		if pat.Security.TokenHash == "" || pat.Security.TokenHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		c.Set("patientID", accountID)
		c.Set("patientProviderID", pat.ProviderID)
		c.Next()
	}
}
