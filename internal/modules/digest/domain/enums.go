//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// DigestSource tells how a digest was produced
// ENUM(generated,fallback,empty)
type DigestSource string
