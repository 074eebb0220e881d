package common

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// FileHash. 32 bytes content hash of a registered file
type FileHash [32]byte

// AttesterId. ed25519 public key of a remote attestation device
type AttesterId [32]byte

// PeerId. ed25519 public key of a servicer peer
type PeerId [32]byte

func (this FileHash) String() string {
	return hex.EncodeToString(this[:])
}

func (this AttesterId) String() string {
	return hex.EncodeToString(this[:])
}

func (this PeerId) String() string {
	return hex.EncodeToString(this[:])
}

func (this FileHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(this.String())
}

func (this *FileHash) UnmarshalJSON(data []byte) error {
	return unmarshalHex32(data, (*[32]byte)(this))
}

func (this AttesterId) MarshalJSON() ([]byte, error) {
	return json.Marshal(this.String())
}

func (this *AttesterId) UnmarshalJSON(data []byte) error {
	return unmarshalHex32(data, (*[32]byte)(this))
}

func (this PeerId) MarshalJSON() ([]byte, error) {
	return json.Marshal(this.String())
}

func (this *PeerId) UnmarshalJSON(data []byte) error {
	return unmarshalHex32(data, (*[32]byte)(this))
}

// FileHashFromHex. parse a 64 chars hex string
func FileHashFromHex(str string) (FileHash, error) {
	var hash FileHash
	err := decodeHex32(str, (*[32]byte)(&hash))
	return hash, err
}

// AttesterIdFromHex. parse a 64 chars hex string
func AttesterIdFromHex(str string) (AttesterId, error) {
	var id AttesterId
	err := decodeHex32(str, (*[32]byte)(&id))
	return id, err
}

// PeerIdFromHex. parse a 64 chars hex string
func PeerIdFromHex(str string) (PeerId, error) {
	var id PeerId
	err := decodeHex32(str, (*[32]byte)(&id))
	return id, err
}

func decodeHex32(str string, out *[32]byte) error {
	buf, err := hex.DecodeString(str)
	if err != nil {
		return err
	}
	if len(buf) != 32 {
		return fmt.Errorf("invalid hash length %d", len(buf))
	}
	copy(out[:], buf)
	return nil
}

func unmarshalHex32(data []byte, out *[32]byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	return decodeHex32(str, out)
}
