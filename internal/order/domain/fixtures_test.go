package domain

import "github.com/google/uuid"

var uuidFixture = uuid.MustParse("6f1d2c3a-4b5e-4f60-8a71-9b82c3d4e5f6")
