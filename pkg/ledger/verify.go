package ledger

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/swap-whitelist/pkg/solana"
)

type accountState struct {
	lamports uint64
	data     []byte
	owner    ed25519.PublicKey
}

type preState struct {
	info  *AccountInfo
	state accountState
}

// snapshot captures each distinct account referenced by an instruction.
func snapshot(accounts []*AccountInfo) []preState {
	var states []preState
	for _, info := range accounts {
		if containsInfo(states, info) {
			continue
		}

		states = append(states, preState{
			info: info,
			state: accountState{
				lamports: info.Lamports,
				data:     append([]byte{}, info.Data...),
				owner:    append(ed25519.PublicKey{}, info.Owner...),
			},
		})
	}
	return states
}

// verify enforces the runtime rules on the changes a program made:
//   - only writable accounts change
//   - only the owner may modify data, reassign the owner or debit lamports
//   - lamports are neither created nor destroyed
func verify(program ed25519.PublicKey, accounts []*AccountInfo, pre []preState) error {
	var before, after uint64
	for _, p := range pre {
		info := p.info
		writable := isWritable(accounts, info.Key)
		owned := bytes.Equal(p.state.owner, program)

		before += p.state.lamports
		after += info.Lamports

		ownerChanged := !bytes.Equal(p.state.owner, info.Owner)
		dataChanged := !bytes.Equal(p.state.data, info.Data)
		lamportsChanged := p.state.lamports != info.Lamports

		if !writable {
			switch {
			case ownerChanged:
				return errors.Wrapf(solana.InstructionErrorModifiedProgramID, "readonly account %s", info)
			case dataChanged:
				return errors.Wrapf(solana.InstructionErrorReadonlyDataModified, "account %s", info)
			case lamportsChanged:
				return errors.Wrapf(solana.InstructionErrorReadonlyLamportChange, "account %s", info)
			}
			continue
		}

		if ownerChanged && !owned {
			return errors.Wrapf(solana.InstructionErrorModifiedProgramID, "account %s", info)
		}
		if dataChanged && !owned {
			return errors.Wrapf(solana.InstructionErrorExternalAccountDataModified, "account %s", info)
		}
		if info.Lamports < p.state.lamports && !owned {
			return errors.Wrapf(solana.InstructionErrorExternalAccountLamportSpend, "account %s", info)
		}
	}

	if before != after {
		return errors.Wrapf(solana.InstructionErrorUnbalancedInstruction, "lamports before %d, after %d", before, after)
	}
	return nil
}

func isWritable(accounts []*AccountInfo, key ed25519.PublicKey) bool {
	for _, info := range accounts {
		if info.IsWritable && bytes.Equal(info.Key, key) {
			return true
		}
	}
	return false
}

func containsInfo(states []preState, info *AccountInfo) bool {
	for _, s := range states {
		if bytes.Equal(s.info.Key, info.Key) {
			return true
		}
	}
	return false
}
