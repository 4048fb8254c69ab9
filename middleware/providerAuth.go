package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	providerRepo "praxis/database/repository/provider"
	"praxis/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
)

const authCacheTTL = time.Hour

// ProviderAuthMiddleware authenticates a provider bearer token. The token
// hash is checked against Redis first; a miss falls back to the provider
// record and repopulates the cache.
func ProviderAuthMiddleware(providers providerRepo.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		accountID, role, err := utils.ExtractIDAndRoleFromToken(tokenString)
		if err != nil || accountID == "" || role != "provider" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		computedHash := utils.HashToken(tokenString)

		if verified, decided := checkAuthCache(accountID, computedHash); decided {
			if !verified {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
				return
			}
			c.Set("providerID", accountID)
			c.Next()
			return
		}

		proj := bson.M{"id": 1, "security": 1, "profile.status": 1}
		prov, err := providers.GetByIDWithProjection(c.Request.Context(), accountID, proj)
		if err != nil || prov == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if prov.Profile.Status == "suspended" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account suspended"})
			return
		}
		if prov.Security.TokenHash == "" || prov.Security.TokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		storeAuthCache(accountID, computedHash)
		c.Set("providerID", accountID)
		c.Next()
	}
}

// bearerToken pulls the token out of the Authorization header, aborting the
// request when it is missing.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return "", false
	}
	return tokenString, true
}

// checkAuthCache consults Redis for the stored token hash. The second return
// reports whether the cache could decide at all; on a cache outage callers
// fall back to the database.
func checkAuthCache(accountID, computedHash string) (verified, decided bool) {
	authCache := utils.GetAuthCacheClient()
	if authCache == nil {
		log.Printf("WARNING: auth cache client not available, falling back to DB lookup")
		return false, false
	}
	ctx := context.Background()
	cacheKey := utils.AuthCachePrefix + accountID

	cachedHash, err := authCache.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		return false, false
	}
	if err != nil {
		log.Printf("WARNING: auth cache read failed: %v, falling back to DB lookup", err)
		return false, false
	}
	if cachedHash != computedHash {
		return false, true
	}
	_ = authCache.Expire(ctx, cacheKey, authCacheTTL).Err()
	return true, true
}

func storeAuthCache(accountID, computedHash string) {
	authCache := utils.GetAuthCacheClient()
	if authCache == nil {
		return
	}
	_ = authCache.Set(context.Background(), utils.AuthCachePrefix+accountID, computedHash, authCacheTTL).Err()
}
