package ledger

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/swap-whitelist/pkg/solana"
)

// MaxInvokeDepth bounds nested cross-program invocations, counting the top
// level instruction.
const MaxInvokeDepth = 4

// AccountInfo is an account as seen by an executing program. Infos for the
// same address share the underlying Account, so writes made by a callee are
// visible to the caller.
type AccountInfo struct {
	Key        ed25519.PublicKey
	IsSigner   bool
	IsWritable bool

	*Account
}

func (i *AccountInfo) String() string {
	return base58.Encode(i.Key)
}

// InvokeContext is the execution environment of a single program invocation.
type InvokeContext struct {
	ctx      context.Context
	bank     *Bank
	req      *request
	depth    int
	log      *logrus.Entry
	program  ed25519.PublicKey
	accounts []*AccountInfo
	pre      []preState
}

func (c *InvokeContext) Context() context.Context {
	return c.ctx
}

// ProgramID is the address of the executing program.
func (c *InvokeContext) ProgramID() ed25519.PublicKey {
	return c.program
}

// Accounts are the instruction accounts in the order the caller supplied them.
func (c *InvokeContext) Accounts() []*AccountInfo {
	return c.accounts
}

func (c *InvokeContext) Rent() Rent {
	return c.bank.rent
}

func (c *InvokeContext) Clock() Clock {
	return c.req.clock
}

// Log records a program log line for the request.
func (c *InvokeContext) Log(format string, args ...interface{}) {
	line := fmt.Sprintf("Program log: "+format, args...)
	c.req.logs = append(c.req.logs, line)
	c.log.Debug(line)
}

// Invoke executes ix as a nested call. Every account referenced by ix must be
// available to the caller with at least the requested privileges. Signer
// privileges may additionally be granted to addresses derived from the
// calling program and one of signerSeeds.
func (c *InvokeContext) Invoke(ix solana.Instruction, signerSeeds ...[][]byte) error {
	if c.depth+1 > MaxInvokeDepth {
		return solana.InstructionErrorCallDepth
	}

	var signers []ed25519.PublicKey
	for _, seeds := range signerSeeds {
		signer, err := solana.CreateProgramAddress(c.program, seeds...)
		if err != nil {
			return errors.Wrap(solana.InstructionErrorInvalidSeeds, err.Error())
		}
		signers = append(signers, signer)
	}

	if c.find(ix.Program) == nil {
		return errors.Wrapf(solana.InstructionErrorMissingAccount, "program %s not provided to caller", base58.Encode(ix.Program))
	}

	program, ok := c.bank.program(ix.Program)
	if !ok {
		return errors.Wrapf(solana.InstructionErrorUnsupportedProgramID, "program %s", base58.Encode(ix.Program))
	}

	accounts := make([]*AccountInfo, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		callerInfo := c.find(meta.PublicKey)
		if callerInfo == nil {
			return errors.Wrapf(solana.InstructionErrorMissingAccount, "account %s not provided to caller", base58.Encode(meta.PublicKey))
		}

		if meta.IsWritable && !callerInfo.IsWritable {
			return errors.Wrapf(solana.InstructionErrorPrivilegeEscalation, "account %s is not writable", callerInfo)
		}
		if meta.IsSigner && !callerInfo.IsSigner && !containsKey(signers, meta.PublicKey) {
			return errors.Wrapf(solana.InstructionErrorPrivilegeEscalation, "account %s did not sign", callerInfo)
		}

		accounts[i] = &AccountInfo{
			Key:        callerInfo.Key,
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
			Account:    callerInfo.Account,
		}
	}

	// Changes made so far by the caller are checked before handing the
	// accounts over, and become the caller's new baseline once the callee
	// returns.
	if err := verify(c.program, c.accounts, c.pre); err != nil {
		return err
	}

	callee := &InvokeContext{
		ctx:      c.ctx,
		bank:     c.bank,
		req:      c.req,
		depth:    c.depth + 1,
		log:      c.log,
		program:  ix.Program,
		accounts: accounts,
	}
	if err := callee.execute(program, ix.Data); err != nil {
		return err
	}

	c.pre = snapshot(c.accounts)
	return nil
}

func (c *InvokeContext) execute(program Program, data []byte) error {
	c.req.logs = append(c.req.logs, fmt.Sprintf("Program %s invoke [%d]", base58.Encode(c.program), c.depth))

	c.pre = snapshot(c.accounts)
	if err := program.Execute(c, data); err != nil {
		c.req.logs = append(c.req.logs, fmt.Sprintf("Program %s failed: %v", base58.Encode(c.program), err))
		return err
	}

	if err := verify(c.program, c.accounts, c.pre); err != nil {
		c.req.logs = append(c.req.logs, fmt.Sprintf("Program %s failed: %v", base58.Encode(c.program), err))
		return err
	}

	c.req.logs = append(c.req.logs, fmt.Sprintf("Program %s success", base58.Encode(c.program)))
	return nil
}

func (c *InvokeContext) find(key ed25519.PublicKey) *AccountInfo {
	for _, info := range c.accounts {
		if bytes.Equal(info.Key, key) {
			return info
		}
	}
	return nil
}

func containsKey(keys []ed25519.PublicKey, key ed25519.PublicKey) bool {
	for _, k := range keys {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}
