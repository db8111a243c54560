package config

// GetOpsAddr returns the listen address for the ops HTTP server.
func GetOpsAddr() string {
	return GetEnvOrDefault("OPS_ADDR", ":8080")
}
