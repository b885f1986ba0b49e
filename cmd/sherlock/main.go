package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"sherlock"
	"sherlock/board"
)

func main() {
	fen := flag.String("fen", "", "FEN to check once and exit; omit to start an interactive session")
	square := flag.String("square", "", "with -fen, report legal_pieces_on for this square (e.g. h4) instead of the verdict")
	verbose := flag.Bool("verbose", false, "print the fact store's debug dump alongside the verdict")
	flag.Parse()

	if *fen != "" {
		runOnce(*fen, *square, *verbose)
		return
	}
	repl(*verbose)
}

func runOnce(fen, square string, verbose bool) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		log.Fatalf("parse fen: %v", err)
	}
	if square != "" {
		sq, err := board.SquareFromAlgebraic(square)
		if err != nil {
			log.Fatalf("parse square: %v", err)
		}
		for _, cp := range sherlock.LegalPiecesOn(b, sq) {
			fmt.Printf("%s %s\n", colorName(cp.Color), kindName(cp.Kind))
		}
		return
	}
	printVerdict(b, verbose)
}

func repl(verbose bool) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("sherlock: legality deduction engine")
	fmt.Println("commands: legal <fen> | pieces <fen> <square> | quit")

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		switch parts[0] {
		case "quit", "exit":
			return
		case "legal":
			fen := strings.Join(parts[1:], " ")
			b, err := board.ParseFEN(fen)
			if err != nil {
				fmt.Printf("parse error: %v\n", err)
				continue
			}
			printVerdict(b, verbose)
		case "pieces":
			if len(parts) < 3 {
				fmt.Println("usage: pieces <fen...> <square>")
				continue
			}
			sqStr := parts[len(parts)-1]
			fen := strings.Join(parts[1:len(parts)-1], " ")
			b, err := board.ParseFEN(fen)
			if err != nil {
				fmt.Printf("parse error: %v\n", err)
				continue
			}
			sq, err := board.SquareFromAlgebraic(sqStr)
			if err != nil {
				fmt.Printf("parse square: %v\n", err)
				continue
			}
			for _, cp := range sherlock.LegalPiecesOn(b, sq) {
				fmt.Printf("%s %s\n", colorName(cp.Color), kindName(cp.Kind))
			}
		default:
			fmt.Println("unrecognized command")
		}
	}
}

func printVerdict(b *board.Board, verbose bool) {
	if verbose {
		a := sherlock.Analyze(b)
		fmt.Println(a.DebugString())
		fmt.Println(!a.IsIllegal())
		return
	}
	fmt.Println(sherlock.IsLegal(b))
}

func colorName(c board.Color) string {
	if c == board.White {
		return "white"
	}
	return "black"
}

func kindName(pt board.PieceType) string {
	switch pt {
	case board.PieceTypePawn:
		return "pawn"
	case board.PieceTypeKnight:
		return "knight"
	case board.PieceTypeBishop:
		return "bishop"
	case board.PieceTypeRook:
		return "rook"
	case board.PieceTypeQueen:
		return "queen"
	case board.PieceTypeKing:
		return "king"
	default:
		return "?"
	}
}
