package ethereum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// init code that deploys a single STOP opcode as runtime code
const stopContractBytecode = "0x6001600c60003960016000f300"

const hardhatArtifact = `{
  "contractName": "Handler",
  "abi": [
    {"type": "constructor", "inputs": [{"name": "token", "type": "address"}, {"name": "signer", "type": "address"}]},
    {"type": "function", "name": "initialize", "stateMutability": "nonpayable",
     "inputs": [{"name": "owner", "type": "address"}, {"name": "fee", "type": "uint16"}], "outputs": []}
  ],
  "bytecode": "` + stopContractBytecode + `",
  "linkReferences": {}
}`

func TestParseArtifact_Hardhat(t *testing.T) {
	art, err := ParseArtifact([]byte(hardhatArtifact))
	require.NoError(t, err)
	require.Equal(t, "Handler", art.Name)
	require.Len(t, art.Bytecode, 13)
	require.Len(t, art.ABI.Constructor.Inputs, 2)
	require.Contains(t, art.ABI.Methods, "initialize")
}

func TestParseArtifact_FoundryObject(t *testing.T) {
	raw := `{"abi": [], "bytecode": {"object": "6001600c60003960016000f300", "linkReferences": {}}}`
	art, err := ParseArtifact([]byte(raw))
	require.NoError(t, err)
	require.Len(t, art.Bytecode, 13)
}

func TestParseArtifact_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{
			name:    "unlinked library",
			raw:     `{"abi": [], "bytecode": "0x6000", "linkReferences": {"contracts/Lib.sol": {}}}`,
			wantErr: ErrUnlinkedArtifact,
		},
		{
			name:    "unlinked foundry library",
			raw:     `{"abi": [], "bytecode": {"object": "0x6000", "linkReferences": {"src/Lib.sol": {}}}}`,
			wantErr: ErrUnlinkedArtifact,
		},
		{
			name:    "interface without code",
			raw:     `{"abi": [], "bytecode": "0x"}`,
			wantErr: ErrEmptyBytecode,
		},
		{
			name: "bad hex",
			raw:  `{"abi": [], "bytecode": "0xzz"}`,
		},
		{
			name: "bad abi",
			raw:  `{"abi": {"type": 1}, "bytecode": "0x6000"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArtifact([]byte(tt.raw))
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Handler.json")
	require.NoError(t, os.WriteFile(path, []byte(hardhatArtifact), 0o600))

	art, err := LoadArtifact(path)
	require.NoError(t, err)
	require.Equal(t, "Handler", art.Name)

	_, err = LoadArtifact(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestArtifact_ConstructorArgsAndPackMethod(t *testing.T) {
	art, err := ParseArtifact([]byte(hardhatArtifact))
	require.NoError(t, err)

	params, err := art.ConstructorArgs([]string{
		"0x00000000000000000000000000000000000000a1",
		"0x00000000000000000000000000000000000000b2",
	})
	require.NoError(t, err)
	require.Len(t, params, 2)

	_, err = art.ConstructorArgs([]string{"0x00000000000000000000000000000000000000a1"})
	require.ErrorIs(t, err, ErrArgumentCount)

	data, err := art.PackMethod("initialize", []string{"0x00000000000000000000000000000000000000a1", "250"})
	require.NoError(t, err)
	require.Len(t, data, 4+2*32)

	_, err = art.PackMethod("initialize", []string{"0x00000000000000000000000000000000000000a1", "70000"})
	require.Error(t, err)

	_, err = art.PackMethod("missing", nil)
	require.Error(t, err)
}
