package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 关停路径对未建立的连接也要安全
func TestClose_NilDB(t *testing.T) {
	assert.NoError(t, Close(nil))
}
