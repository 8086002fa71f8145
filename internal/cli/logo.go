package cli

const asciiLogo = `     _
  __| |_   __ __ _  ___ _ __
 / _' \ \ / / _' |/ _ \ '_ \
| (_| |\ V / (_| |  __/ | | |
 \__,_| \_/ \__, |\___|_| |_|
            |___/`
