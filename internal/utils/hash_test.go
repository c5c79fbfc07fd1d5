// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestHashString_MatchesHMAC(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("key"))
	mac.Write([]byte("JBSWY3DPEHPK3PXP:123456"))
	want := hex.EncodeToString(mac.Sum(nil))

	if got := HashString("JBSWY3DPEHPK3PXP:123456", "key"); got != want {
		t.Errorf("HashString mismatch:\n  got:  %s\n  want: %s", got, want)
	}
}

func TestHashString_KeyMatters(t *testing.T) {
	if HashString("data", "k1") == HashString("data", "k2") {
		t.Error("different keys must produce different digests")
	}
}
