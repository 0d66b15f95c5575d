package proto

import "strconv"

// SigningErrorType is the error status every signing output message carries.
type SigningErrorType int32

const (
	SigningOK                        SigningErrorType = 0
	ErrorGeneral                     SigningErrorType = 1
	ErrorInternal                    SigningErrorType = 2
	ErrorLowBalance                  SigningErrorType = 3
	ErrorZeroAmountRequested         SigningErrorType = 4
	ErrorMissingPrivateKey           SigningErrorType = 5
	ErrorWrongFee                    SigningErrorType = 6
	ErrorSigning                     SigningErrorType = 7
	ErrorTxTooBig                    SigningErrorType = 8
	ErrorMissingInputUtxos           SigningErrorType = 9
	ErrorNotEnoughUtxos              SigningErrorType = 10
	ErrorScriptRedeem                SigningErrorType = 11
	ErrorScriptOutput                SigningErrorType = 12
	ErrorScriptWitnessProgram        SigningErrorType = 13
	ErrorInvalidMemo                 SigningErrorType = 14
	ErrorInvalidPrivateKey           SigningErrorType = 15
	ErrorInvalidAddress              SigningErrorType = 16
	ErrorInvalidUtxo                 SigningErrorType = 17
	ErrorInvalidUtxoAmount           SigningErrorType = 18
	ErrorInvalidParams               SigningErrorType = 19
	ErrorInvalidRequestedTokenAmount SigningErrorType = 20
	ErrorNotSupported                SigningErrorType = 21
	ErrorDustAmountRequested         SigningErrorType = 22
)

var signingErrorNames = map[SigningErrorType]string{
	SigningOK:                        "OK",
	ErrorGeneral:                     "Error_general",
	ErrorInternal:                    "Error_internal",
	ErrorLowBalance:                  "Error_low_balance",
	ErrorZeroAmountRequested:         "Error_zero_amount_requested",
	ErrorMissingPrivateKey:           "Error_missing_private_key",
	ErrorWrongFee:                    "Error_wrong_fee",
	ErrorSigning:                     "Error_signing",
	ErrorTxTooBig:                    "Error_tx_too_big",
	ErrorMissingInputUtxos:           "Error_missing_input_utxos",
	ErrorNotEnoughUtxos:              "Error_not_enough_utxos",
	ErrorScriptRedeem:                "Error_script_redeem",
	ErrorScriptOutput:                "Error_script_output",
	ErrorScriptWitnessProgram:        "Error_script_witness_program",
	ErrorInvalidMemo:                 "Error_invalid_memo",
	ErrorInvalidPrivateKey:           "Error_invalid_private_key",
	ErrorInvalidAddress:              "Error_invalid_address",
	ErrorInvalidUtxo:                 "Error_invalid_utxo",
	ErrorInvalidUtxoAmount:           "Error_invalid_utxo_amount",
	ErrorInvalidParams:               "Error_invalid_params",
	ErrorInvalidRequestedTokenAmount: "Error_invalid_requested_token_amount",
	ErrorNotSupported:                "Error_not_supported",
	ErrorDustAmountRequested:         "Error_dust_amount_requested",
}

func (t SigningErrorType) String() string {
	if name, ok := signingErrorNames[t]; ok {
		return name
	}
	return "SigningErrorType(" + strconv.Itoa(int(t)) + ")"
}
