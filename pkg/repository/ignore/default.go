package ignore

// DefaultIgnore is written to .sourceignore by init.
const DefaultIgnore = `# Paths listed here are left out of write-tree.
# Syntax: *.log, build/, /TODO, **/tmp, !keep.log

# Editor and OS files
.DS_Store
Thumbs.db
*.swp
*~

# Temporary files
*.tmp
.cache/
`
