package providers

import "time"

// shutdownTimeout bounds graceful shutdown and startup seeding.
const shutdownTimeout = 30 * time.Second
